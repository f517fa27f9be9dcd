package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/tavolo/engine/assets/loaders"
	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// AssetManager indexes every file under the asset directory and watches it
// for changes, so an edited texture or shader shows up on the next load.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[AssetType]Loader),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	am.root = assetsDir

	go am.start()

	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}

	am.registerLoader(AssetTypeImage, &loaders.ImageLoader{})
	am.registerLoader(AssetTypeShader, &loaders.ShaderLoader{})

	return nil
}

func (am *AssetManager) Shutdown() {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.isClosed {
		return
	}
	am.isClosed = true
	close(am.done)
}

func (am *AssetManager) registerLoader(assetType AssetType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadImage decodes the named texture file under <root>/textures.
func (am *AssetManager) LoadImage(filename string) (*metadata.TexturePixels, error) {
	payload, err := am.load(filepath.Join(am.root, "textures", filename), AssetTypeImage)
	if err != nil {
		return nil, err
	}
	return payload.(*metadata.TexturePixels), nil
}

// LoadShaderSource reads the named GLSL file under <root>/shaders.
func (am *AssetManager) LoadShaderSource(filename string) (string, error) {
	payload, err := am.load(filepath.Join(am.root, "shaders", filename), AssetTypeShader)
	if err != nil {
		return "", err
	}
	return payload.(string), nil
}

func (am *AssetManager) load(path string, assetType AssetType) (interface{}, error) {
	am.mutex.RLock()
	asset, exists := am.assets[path]
	am.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("asset not found: %s", path)
	}
	if asset.Type != assetType {
		return nil, fmt.Errorf("asset %s has type %d, wanted %d", path, asset.Type, assetType)
	}

	loader, ok := am.loaders[assetType]
	if !ok {
		return nil, fmt.Errorf("no loader registered for asset type: %d", assetType)
	}

	payload, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	asset.LastLoaded = time.Now()
	am.assets[path] = asset
	am.mutex.Unlock()

	return payload, nil
}

func (am *AssetManager) add(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.fsnotify.Add(name)
}

func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

func (am *AssetManager) start() {
	for {
		select {
		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}

		case e := <-am.fsnotify.Errors:
			if e != nil {
				core.LogError(e.Error())
			}

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds every directory under path to the watch list and
// indexes every file it passes on the way.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
}

func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func determineAssetType(path string) AssetType {
	switch filepath.Ext(path) {
	case ".png", ".jpg", ".jpeg":
		return AssetTypeImage
	case ".vert", ".frag", ".glsl":
		return AssetTypeShader
	default:
		return AssetTypeNone
	}
}
