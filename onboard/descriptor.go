package onboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

const descriptorExt = ".json"

// ErrNoDescriptors is returned when the descriptor directory has no .json file.
var ErrNoDescriptors = errors.New("no app descriptors found")

// AppDescriptor describes an app to onboard
type AppDescriptor struct {
	ManifestURL   string   `json:"manifest_url" yaml:"manifest_url"`
	Categories    []string `json:"categories" yaml:"categories"`
	DeviceTypes   []string `json:"device_types" yaml:"device_types"`
	PrivacyPolicy string   `json:"privacy_policy" yaml:"privacy_policy"`
	// Screenshot overrides the shared screenshot, relative to the descriptor directory.
	Screenshot string `json:"screenshot,omitempty" yaml:"screenshot,omitempty"`
	// Source is the descriptor file URL
	Source string `json:"-" yaml:"-"`
}

// Validate checks the manifest url is set
func (d *AppDescriptor) Validate() error {
	if strings.TrimSpace(d.ManifestURL) == "" {
		return fmt.Errorf("descriptor %v: manifest_url was empty", d.Source)
	}
	return nil
}

// LoadDescriptors loads every .json descriptor under location ordered by file name.
func LoadDescriptors(ctx context.Context, fs afs.Service, location string) ([]*AppDescriptor, error) {
	objects, err := fs.List(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to list app descriptors %v: %w", location, err)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Name() < objects[j].Name() })
	var ret []*AppDescriptor
	for _, object := range objects {
		if object.IsDir() || path.Ext(object.Name()) != descriptorExt {
			continue
		}
		data, err := fs.DownloadWithURL(ctx, object.URL())
		if err != nil {
			return nil, fmt.Errorf("failed to read app descriptor %v: %w", object.URL(), err)
		}
		descriptor := &AppDescriptor{}
		if err = json.Unmarshal(data, descriptor); err != nil {
			return nil, fmt.Errorf("failed to decode app descriptor %v: %w", object.URL(), err)
		}
		descriptor.Source = object.URL()
		if err = descriptor.Validate(); err != nil {
			return nil, err
		}
		if descriptor.Screenshot != "" && !isAbsolute(descriptor.Screenshot) {
			descriptor.Screenshot = url.JoinUNC(location, descriptor.Screenshot)
		}
		ret = append(ret, descriptor)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoDescriptors, location)
	}
	return ret, nil
}

func isAbsolute(location string) bool {
	return strings.Contains(location, "://") || path.IsAbs(location)
}
