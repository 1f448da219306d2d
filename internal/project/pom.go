// SPDX-License-Identifier: MPL-2.0

package project

import (
	"cmp"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/goots/pom-deployer/internal/repository"
	"github.com/goots/pom-deployer/pkg/types"
)

// DefaultFileName is the project descriptor looked up in a directory.
const DefaultFileName = "pom.xml"

var propertyRef = regexp.MustCompile(`\$\{([^}]+)\}`)

type (
	pomXML struct {
		XMLName    xml.Name    `xml:"project"`
		Parent     *parentXML  `xml:"parent"`
		GroupID    string      `xml:"groupId"`
		ArtifactID string      `xml:"artifactId"`
		Version    string      `xml:"version"`
		Packaging  string      `xml:"packaging"`
		Properties propertyMap `xml:"properties"`
		Build      buildXML    `xml:"build"`
		DistMgmt   distMgmtXML `xml:"distributionManagement"`
		PluginRepo []remoteXML `xml:"pluginRepositories>pluginRepository"`
	}

	parentXML struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
		Version    string `xml:"version"`
	}

	buildXML struct {
		Plugins          []pluginXML `xml:"plugins>plugin"`
		PluginManagement struct {
			Plugins []pluginXML `xml:"plugins>plugin"`
		} `xml:"pluginManagement"`
	}

	pluginXML struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
		Version    string `xml:"version"`
	}

	distMgmtXML struct {
		Repository         *deployRepoXML `xml:"repository"`
		SnapshotRepository *deployRepoXML `xml:"snapshotRepository"`
	}

	deployRepoXML struct {
		ID            string `xml:"id"`
		URL           string `xml:"url"`
		Layout        string `xml:"layout"`
		UniqueVersion string `xml:"uniqueVersion"`
	}

	remoteXML struct {
		ID  string `xml:"id"`
		URL string `xml:"url"`
	}

	propertyMap map[string]string
)

// UnmarshalXML collects every child element of <properties> by name.
func (m *propertyMap) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	*m = propertyMap{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			(*m)[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			return nil
		}
	}
}

// Load reads a project from a pom.xml file, or from the pom.xml inside path
// when path is a directory. layouts resolves distribution-management
// layouts; nil means repository.DefaultLayouts.
func Load(path string, layouts *repository.LayoutRegistry) (*Project, error) {
	if layouts == nil {
		layouts = repository.DefaultLayouts()
	}

	file, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve project path %s: %w", path, err)
	}
	if info, statErr := os.Stat(file); statErr == nil && info.IsDir() {
		file = filepath.Join(file, DefaultFileName)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read project %s: %w", file, err)
	}

	p, err := Parse(data, layouts)
	if err != nil {
		return nil, fmt.Errorf("parse project %s: %w", file, err)
	}
	p.File = file
	p.BaseDir = filepath.Dir(file)

	if p.ArtifactID == "" {
		return nil, &InvalidProjectError{File: file, Field: "artifactId", Reason: "is missing"}
	}
	if p.Version == "" {
		return nil, &InvalidProjectError{File: file, Field: "version", Reason: "is missing"}
	}
	return p, nil
}

// Parse decodes a pom.xml document. Group id and version fall back to the
// parent's; ${...} references to properties and project coordinates are
// interpolated and unresolved references are kept verbatim.
func Parse(data []byte, layouts *repository.LayoutRegistry) (*Project, error) {
	if layouts == nil {
		layouts = repository.DefaultLayouts()
	}

	var doc pomXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	groupID, version := doc.GroupID, doc.Version
	props := map[string]string{}
	for k, v := range doc.Properties {
		props[k] = v
	}
	if doc.Parent != nil {
		if groupID == "" {
			groupID = doc.Parent.GroupID
		}
		if version == "" {
			version = doc.Parent.Version
		}
		props["project.parent.groupId"] = doc.Parent.GroupID
		props["project.parent.artifactId"] = doc.Parent.ArtifactID
		props["project.parent.version"] = doc.Parent.Version
	}
	props["project.groupId"] = groupID
	props["project.artifactId"] = doc.ArtifactID
	props["project.version"] = version
	props["pom.version"] = version

	in := interpolator(props)
	version = in(version)
	props["project.version"] = version
	props["pom.version"] = version

	p := &Project{
		GroupID:    types.GroupID(in(groupID)),
		ArtifactID: types.ArtifactID(in(doc.ArtifactID)),
		Version:    version,
		Packaging:  in(doc.Packaging),
	}
	if p.Packaging == "" {
		p.Packaging = "jar"
	}

	p.Plugins = convertPlugins(doc.Build.Plugins, in)
	p.PluginManagement = convertPlugins(doc.Build.PluginManagement.Plugins, in)

	var err error
	if p.Distribution.Repository, err = convertDeployRepo(doc.DistMgmt.Repository, layouts, in); err != nil {
		return nil, err
	}
	if p.Distribution.SnapshotRepository, err = convertDeployRepo(doc.DistMgmt.SnapshotRepository, layouts, in); err != nil {
		return nil, err
	}

	for _, r := range doc.PluginRepo {
		p.PluginRepositories = append(p.PluginRepositories, repository.Remote{ID: in(r.ID), URL: in(r.URL)})
	}
	return p, nil
}

func interpolator(props map[string]string) func(string) string {
	return func(s string) string {
		s = strings.TrimSpace(s)
		return propertyRef.ReplaceAllStringFunc(s, func(ref string) string {
			if v, ok := props[ref[2:len(ref)-1]]; ok {
				return v
			}
			return ref
		})
	}
}

func convertPlugins(in []pluginXML, interpolate func(string) string) []Plugin {
	out := make([]Plugin, 0, len(in))
	for _, pl := range in {
		groupID := interpolate(pl.GroupID)
		if groupID == "" {
			groupID = DefaultPluginGroupID
		}
		out = append(out, Plugin{
			GroupID:    groupID,
			ArtifactID: interpolate(pl.ArtifactID),
			Version:    interpolate(pl.Version),
		})
	}
	return out
}

func convertDeployRepo(in *deployRepoXML, layouts *repository.LayoutRegistry, interpolate func(string) string) (*repository.Repository, error) {
	if in == nil || interpolate(in.URL) == "" {
		return nil, nil
	}

	layoutName := interpolate(in.Layout)
	if layoutName == "" {
		layoutName = repository.LayoutDefault
	}
	layout, err := layouts.Get(layoutName)
	if err != nil {
		return nil, err
	}

	unique := true
	if v := interpolate(in.UniqueVersion); v != "" {
		if unique, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("uniqueVersion %q: %w", v, err)
		}
	}
	return repository.NewDeploymentRepository(interpolate(in.ID), interpolate(in.URL), layout, unique), nil
}

const (
	placeholderGroupID    = "org.goots.pomdeployer"
	placeholderArtifactID = "isolated-build"
	placeholderVersion    = "1"
)

type minimalPOMXML struct {
	XMLName      xml.Name    `xml:"project"`
	ModelVersion string      `xml:"modelVersion"`
	GroupID      string      `xml:"groupId"`
	ArtifactID   string      `xml:"artifactId"`
	Version      string      `xml:"version"`
	Packaging    string      `xml:"packaging"`
	PluginRepo   []remoteXML `xml:"pluginRepositories>pluginRepository,omitempty"`
}

// MarshalPOM encodes a minimal pom.xml with the coordinates, packaging and
// plugin repositories of p. Missing coordinates get placeholders so that
// the document always describes a buildable project.
func (p *Project) MarshalPOM() ([]byte, error) {
	doc := minimalPOMXML{
		ModelVersion: "4.0.0",
		GroupID:      cmp.Or(string(p.GroupID), placeholderGroupID),
		ArtifactID:   cmp.Or(string(p.ArtifactID), placeholderArtifactID),
		Version:      cmp.Or(p.Version, placeholderVersion),
		Packaging:    cmp.Or(p.Packaging, repository.PackagingPOM),
	}
	for _, r := range p.PluginRepositories {
		doc.PluginRepo = append(doc.PluginRepo, remoteXML(r))
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	out := append([]byte(xml.Header), body...)
	return append(out, '\n'), nil
}
