package types

// ArtifactListing is the discovered contents of one artifact directory
// of one resolved dependency. Listings arrive in dependency order,
// directories in recipe order, files sorted by name.
type ArtifactListing struct {
	Name    string
	Version string
	Dir     string
	Files   []string
}
