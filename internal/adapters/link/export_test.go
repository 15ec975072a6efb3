// export_test.go exports private strategies for white-box testing.
package link

var (
	SymlinkDir = symlinkDir
	CopyTree   = copyTree
)

// HardlinkTree exports the private hardlink strategy for testing.
func (l *Linker) HardlinkTree(source, target string) error {
	return l.hardlinkTree(source, target)
}
