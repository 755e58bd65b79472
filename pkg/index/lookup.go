package index

import (
	version "github.com/hashicorp/go-version"

	"github.com/glorpus-work/mobdef/pkg/model"
)

// Lookup matches an app declaration against the named repository's parsed
// index and returns the concrete lock entry, or nil when no package matches
// the declared id and version selection. The declaration's repository field
// must already be filled in by the resolver.
func Lookup(repositories map[string]*RepositoryData, decl model.AppDeclaration) *model.LockEntry {
	data, ok := repositories[decl.Repository]
	if !ok || data.Index == nil {
		return nil
	}

	app := data.Index.FindApplication(decl.ID)
	if app == nil {
		return nil
	}

	pkg := selectPackage(app, decl.VersionCode)
	if pkg == nil {
		return nil
	}

	packageURL := data.Repository.URL
	if len(packageURL) > 0 && packageURL[len(packageURL)-1] != '/' {
		packageURL += "/"
	}
	packageURL += pkg.APKName

	packageName := pkg.APKName
	if packageName == "" {
		packageName = model.PackageNameFromURL(packageURL)
	}

	return &model.LockEntry{
		ID:          decl.ID,
		PackageName: packageName,
		PackageURL:  packageURL,
		Repository:  data.Repository.ID,
		Type:        decl.Type,
		Hash:        pkg.Hash.Value,
		HashType:    pkg.Hash.Type,
	}
}

// selectPackage picks the package matching the version selection: an exact
// versioncode pin, or the newest package for "latest". When two packages
// share the highest versioncode, their version names break the tie.
func selectPackage(app *Application, versionCode string) *Package {
	if versionCode != "" && versionCode != model.VersionLatest {
		for i := range app.Packages {
			if app.Packages[i].VersionCode == versionCode {
				return &app.Packages[i]
			}
		}
		return nil
	}

	var best *Package
	for i := range app.Packages {
		candidate := &app.Packages[i]
		if best == nil || newerPackage(candidate, best) {
			best = candidate
		}
	}
	return best
}

func newerPackage(candidate, current *Package) bool {
	cc, bc := candidate.VersionCodeInt(), current.VersionCodeInt()
	if cc != bc {
		return cc > bc
	}
	cv, err := version.NewVersion(candidate.Version)
	if err != nil {
		return false
	}
	bv, err := version.NewVersion(current.Version)
	if err != nil {
		return true
	}
	return cv.GreaterThan(bv)
}
