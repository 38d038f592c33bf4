package graph

// File represents a parsed source file with its namespace declaration sites
type File struct {
	Name      string    // File name
	Path      string    // File path
	Hash      uint64    // Content hash
	Imports   []*Import // File level using directives
	Sites     []*Site   // Namespace declarations in source order
	HasErrors bool      // Whether the parser reported syntax errors
}

// Site represents a single namespace declaration in a single file
type Site struct {
	Namespace string    // Qualified namespace name
	Path      string    // File path
	Imports   []*Import // Using directives in scope: file level first, then block level
	Types     []*Type   // Types declared directly in the namespace body
	Members   []*Member // All direct members of the namespace body
	Location  *Location // Location of the declaration
}

// AddSite appends a namespace declaration site to the file
func (f *File) AddSite(site *Site) {
	if site.Path == "" {
		site.Path = f.Path
	}
	f.Sites = append(f.Sites, site)
}
