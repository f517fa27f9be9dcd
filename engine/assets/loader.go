package assets

// AssetType classifies files discovered under the asset directory.
type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeImage
	AssetTypeShader
)

// Loader turns a file on disk into an in-memory asset payload. Each asset
// type registers exactly one loader with the manager.
type Loader interface {
	Load(path string) (interface{}, error)
}
