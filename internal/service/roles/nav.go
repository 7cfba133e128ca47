package roles

// NavGroup is one section of the top-level navigation.
type NavGroup struct {
	Slug  string
	Title string
	Pages []Page
}

// Page is a navigable dashboard page. All pages are placeholder stubs.
type Page struct {
	Slug  string
	Title string
}

var (
	pageOne   = Page{Slug: "page-1", Title: "Page 1"}
	pageTwo   = Page{Slug: "page-2", Title: "Page 2"}
	pageThree = Page{Slug: "page-3", Title: "Page 3"}
	pageFour  = Page{Slug: "page-4", Title: "Page 4"}
	pageFive  = Page{Slug: "page-5", Title: "Page 5"}
)

// superAdminNav is the full navigation set.
var superAdminNav = []NavGroup{
	{Slug: "super-1", Title: "Super 1", Pages: []Page{pageOne}},
	{Slug: "super-2", Title: "Super 2", Pages: []Page{pageTwo}},
	{Slug: "super-3", Title: "Super 3", Pages: []Page{pageThree}},
	{Slug: "super-4", Title: "Super 4", Pages: []Page{pageFour, pageFive}},
}

// adminNav is the admin variant.
var adminNav = []NavGroup{
	{Slug: "admin-1", Title: "Admin Group 1", Pages: []Page{pageOne}},
	{Slug: "admin-2", Title: "Admin Group 2", Pages: []Page{pageTwo}},
	{Slug: "admin-3", Title: "Admin Group 3", Pages: []Page{pageThree}},
	{Slug: "admin-4", Title: "Admin Group 4", Pages: []Page{pageFour, pageFive}},
}

// coreNav is the regular-user set.
var coreNav = []NavGroup{
	{Slug: "core-1", Title: "Core Group 1", Pages: []Page{pageOne}},
	{Slug: "core-2", Title: "Core Group 2", Pages: []Page{pageTwo}},
	{Slug: "core-3", Title: "Core Group 3", Pages: []Page{pageThree}},
	{Slug: "core-4", Title: "Core Group 4", Pages: []Page{pageFour, pageFive}},
}
