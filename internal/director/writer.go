package director

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// WriteScene writes a scene to a YAML file.
func WriteScene(scene *Scene, path string) error {
	data, err := yaml.Marshal(scene)
	if err != nil {
		return errors.Wrap(err, "marshal scene")
	}

	return os.WriteFile(path, data, 0o644)
}

// ReadScene reads a scene from a YAML file. Relative image sources are
// resolved against the file's directory.
func ReadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scene, err := ParseScene(data)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", path)
	}
	scene.Dir = filepath.Dir(path)

	return scene, nil
}

// ParseScene decodes a scene from YAML. Unknown fields are rejected.
func ParseScene(data []byte) (*Scene, error) {
	var scene Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&scene); err != nil {
		return nil, err
	}
	return &scene, nil
}
