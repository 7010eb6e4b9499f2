package director

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/shape2video/internal/system"
)

const timestampLayout = "2006-01-02_15-04-05"

// GenerateScenePath creates a timestamped scene filename in dir.
func GenerateScenePath(dir, name string) string {
	timestamp := time.Now().Format(timestampLayout)
	return filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", name, timestamp))
}

// GenerateOutputPath names the video for a scene file: the scene's base name
// plus a timestamp, in dir.
func GenerateOutputPath(dir, scenePath string) string {
	base := strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
	if base == "" || base == "." {
		base = "scene"
	}
	timestamp := time.Now().Format(timestampLayout)
	return filepath.Join(dir, fmt.Sprintf("%s_%s.mp4", base, timestamp))
}

// FindLatestScene finds the most recently modified scene file in dir.
func FindLatestScene(dir string) (string, error) {
	return system.FindLatestFile(dir, ".yaml", ".yml")
}
