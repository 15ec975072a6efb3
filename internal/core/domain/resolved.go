package domain

// Dependency is one declared dependency: a package name and a range
// expression constraining which versions satisfy it.
type Dependency struct {
	Name  string
	Range string
}

// DependencySet is an ordered list of dependency declarations. Order matters:
// the resolver processes declarations in manifest order, and that order
// decides which requester wins the flat-store overwrite policy.
type DependencySet []Dependency

// Get returns the range declared for name, if present.
func (s DependencySet) Get(name string) (string, bool) {
	for _, d := range s {
		if d.Name == name {
			return d.Range, true
		}
	}
	return "", false
}

// Add appends a declaration, replacing an existing one for the same name
// in place so declaration order is preserved.
func (s DependencySet) Add(name, rng string) DependencySet {
	for i, d := range s {
		if d.Name == name {
			s[i].Range = rng
			return s
		}
	}
	return append(s, Dependency{Name: name, Range: rng})
}

// ResolvedPackage is one entry of a resolved tree: the concrete version
// chosen for a name and that version's declared dependencies.
type ResolvedPackage struct {
	Version      string
	Dependencies map[string]string
}

// ResolvedTree maps package name to its resolved entry. It is flat: one entry
// per name per resolution pass, matching the single shared module namespace.
type ResolvedTree map[string]ResolvedPackage

// Manifest is a project's parsed pakt.yaml.
type Manifest struct {
	Name            string
	Dependencies    DependencySet
	DevDependencies DependencySet
}

// AllDependencies returns runtime and dev dependencies in declaration order,
// runtime first. Dev declarations do not override runtime ones.
func (m *Manifest) AllDependencies() DependencySet {
	out := make(DependencySet, 0, len(m.Dependencies)+len(m.DevDependencies))
	out = append(out, m.Dependencies...)
	for _, d := range m.DevDependencies {
		if _, ok := out.Get(d.Name); !ok {
			out = append(out, d)
		}
	}
	return out
}

// LinkStrategy identifies which projection strategy materialized a package
// into a project tree.
type LinkStrategy string

const (
	// LinkHardlink mirrors the directory tree and hardlinks each file.
	LinkHardlink LinkStrategy = "hardlink"
	// LinkSymlink creates one symbolic link for the whole target path.
	LinkSymlink LinkStrategy = "symlink"
	// LinkCopy performs a full recursive byte copy.
	LinkCopy LinkStrategy = "copy"
)

// RegistryPackage is the registry's record for one package name.
type RegistryPackage struct {
	Name     string                   `json:"name"`
	Versions map[string]VersionRecord `json:"versions"`
	DistTags map[string]string        `json:"dist-tags,omitempty"`
}

// VersionRecord is the registry's record for one published version.
type VersionRecord struct {
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Dist         Dist              `json:"dist"`
}

// Dist points at a version's distributable artifact.
type Dist struct {
	Tarball string `json:"tarball"`
}
