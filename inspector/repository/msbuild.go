package repository

import (
	"encoding/xml"
	"fmt"
	"strings"
)

type msbuildProject struct {
	XMLName        xml.Name               `xml:"Project"`
	SDK            string                 `xml:"Sdk,attr"`
	PropertyGroups []msbuildPropertyGroup `xml:"PropertyGroup"`
	ItemGroups     []msbuildItemGroup     `xml:"ItemGroup"`
}

type msbuildPropertyGroup struct {
	RootNamespace             string `xml:"RootNamespace"`
	AssemblyName              string `xml:"AssemblyName"`
	EnableDefaultItems        string `xml:"EnableDefaultItems"`
	EnableDefaultCompileItems string `xml:"EnableDefaultCompileItems"`
}

type msbuildItemGroup struct {
	Compile []msbuildItem `xml:"Compile"`
}

type msbuildItem struct {
	Include string `xml:"Include,attr"`
	Remove  string `xml:"Remove,attr"`
}

// ParseBuildSettings reads compile item settings from MSBuild project content
func ParseBuildSettings(data []byte) (*BuildSettings, error) {
	project := &msbuildProject{}
	if err := xml.Unmarshal(data, project); err != nil {
		return nil, fmt.Errorf("invalid project file: %w", err)
	}
	settings := &BuildSettings{SDK: strings.TrimSpace(project.SDK)}
	settings.DefaultCompileItem = settings.SDK != ""
	for _, group := range project.PropertyGroups {
		if value := strings.TrimSpace(group.RootNamespace); value != "" {
			settings.RootNamespace = value
		}
		if value := strings.TrimSpace(group.AssemblyName); value != "" {
			settings.AssemblyName = value
		}
		if isFalse(group.EnableDefaultItems) || isFalse(group.EnableDefaultCompileItems) {
			settings.DefaultCompileItem = false
		}
	}
	for _, group := range project.ItemGroups {
		for _, item := range group.Compile {
			settings.Include = append(settings.Include, splitItems(item.Include)...)
			settings.Remove = append(settings.Remove, splitItems(item.Remove)...)
		}
	}
	return settings, nil
}

func isFalse(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "false")
}

// splitItems splits a semicolon separated item list and normalizes separators
func splitItems(value string) []string {
	var result []string
	for _, item := range strings.Split(value, ";") {
		item = strings.TrimSpace(item)
		if item == "" || strings.Contains(item, "$(") {
			continue
		}
		item = strings.ReplaceAll(item, "\\", "/")
		result = append(result, strings.TrimPrefix(item, "./"))
	}
	return result
}
