package icongen

import (
	"bytes"
	"context"

	"github.com/leeforge/appicon/json"
	"github.com/leeforge/appicon/media/storage"
)

// ManifestName is the file Xcode reads to map icon files to slots.
const ManifestName = "Contents.json"

type Manifest struct {
	Images []ManifestImage `json:"images"`
	Info   ManifestInfo    `json:"info"`
}

type ManifestImage struct {
	Size     string `json:"size"`
	Idiom    string `json:"idiom"`
	Filename string `json:"filename"`
	Scale    string `json:"scale"`
}

type ManifestInfo struct {
	Version int    `json:"version" default:"1"`
	Author  string `json:"author" default:"xcode"`
}

// BuildManifest lists every slot of every successfully generated icon.
func BuildManifest(report *Report) *Manifest {
	m := &Manifest{Images: []ManifestImage{}}
	for _, res := range report.Generated() {
		for _, slot := range res.Icon.Slots {
			m.Images = append(m.Images, ManifestImage{
				Size:     slot.Points,
				Idiom:    slot.Idiom,
				Filename: res.Icon.Name,
				Scale:    slot.Scale,
			})
		}
	}
	return m
}

// WriteManifest writes Contents.json for report into store. Icons that
// are not present in store are left out.
func WriteManifest(ctx context.Context, store storage.Provider, report *Report) (string, error) {
	files, err := store.List(ctx)
	if err != nil {
		return "", err
	}
	stored := make(map[string]struct{}, len(files))
	for _, f := range files {
		stored[f.Name] = struct{}{}
	}

	m := BuildManifest(report)
	images := m.Images[:0]
	for _, img := range m.Images {
		if _, ok := stored[img.Filename]; ok {
			images = append(images, img)
		}
	}
	m.Images = images

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return store.Put(ctx, ManifestName, bytes.NewReader(append(data, '\n')))
}
