// export_test.go exports private helpers for white-box testing.
package registry

var (
	StripWrapper   = stripWrapper
	ExtractTarball = extractTarball
)
