// Package index supplies parsed package-repository index data and the
// id+version lookup used during lock-file resolution. Index documents are
// fetched once into the workspace resource cache and never revalidated.
package index

import (
	"encoding/xml"
	"os"
	"strconv"

	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
)

// Index is the parsed form of a repository's index.xml document.
type Index struct {
	XMLName      xml.Name      `xml:"fdroid"`
	Applications []Application `xml:"application"`
}

// Application groups the packages published for one app id.
type Application struct {
	// Newer index documents carry the id as an attribute, older ones as a
	// child element. EffectiveID picks whichever is present.
	IDAttr    string    `xml:"id,attr"`
	IDElement string    `xml:"id"`
	Name      string    `xml:"name"`
	Packages  []Package `xml:"package"`
}

// EffectiveID returns the application id regardless of index document vintage.
func (a *Application) EffectiveID() string {
	if a.IDAttr != "" {
		return a.IDAttr
	}
	return a.IDElement
}

// Package is one published artifact of an application.
type Package struct {
	Version     string `xml:"version"`
	VersionCode string `xml:"versioncode"`
	APKName     string `xml:"apkname"`
	Size        int64  `xml:"size"`
	Hash        Hash   `xml:"hash"`
}

// Hash carries the digest an index publishes for a package.
type Hash struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// VersionCodeInt returns the numeric version code, or -1 when it cannot be
// parsed.
func (p *Package) VersionCodeInt() int64 {
	code, err := strconv.ParseInt(p.VersionCode, 10, 64)
	if err != nil {
		return -1
	}
	return code
}

// ParseIndex parses an index document from raw XML bytes.
func ParseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := xml.Unmarshal(data, &idx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrIndexParse, err.Error())
	}
	return &idx, nil
}

// ParseIndexFromFile parses an index document from a locally cached file.
func ParseIndexFromFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "cannot read index file %s", path)
	}
	return ParseIndex(data)
}

// FindApplication returns the application with the given id, or nil.
func (idx *Index) FindApplication(id string) *Application {
	for i := range idx.Applications {
		if idx.Applications[i].EffectiveID() == id {
			return &idx.Applications[i]
		}
	}
	return nil
}
