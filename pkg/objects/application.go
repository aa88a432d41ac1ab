/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"
	"fmt"

	"github.com/cubewise-code/tm1go/pkg/rest"
)

// ApplicationType distinguishes the entry kinds of the application tree
type ApplicationType int

const (
	ApplicationTypeFolder ApplicationType = iota + 1
	ApplicationTypeCube
	ApplicationTypeChore
	ApplicationTypeDimension
	ApplicationTypeProcess
	ApplicationTypeSubset
	ApplicationTypeView
	ApplicationTypeLink
	ApplicationTypeDocument
)

func (t ApplicationType) String() string {
	switch t {
	case ApplicationTypeFolder:
		return "Folder"
	case ApplicationTypeCube:
		return "Cube"
	case ApplicationTypeChore:
		return "Chore"
	case ApplicationTypeDimension:
		return "Dimension"
	case ApplicationTypeProcess:
		return "Process"
	case ApplicationTypeSubset:
		return "Subset"
	case ApplicationTypeView:
		return "View"
	case ApplicationTypeLink:
		return "Link"
	case ApplicationTypeDocument:
		return "Document"
	default:
		return fmt.Sprintf("ApplicationType(%d)", int(t))
	}
}

// ODataType returns the entry type used in creation bodies
func (t ApplicationType) ODataType() string {
	switch t {
	case ApplicationTypeFolder:
		return "tm1.Folder"
	case ApplicationTypeLink:
		return "tm1.Link"
	case ApplicationTypeDocument:
		return "tm1.Document"
	default:
		return "tm1." + t.String() + "Reference"
	}
}

// Suffix returns the file suffix entries of this type carry on pre-v12 servers
func (t ApplicationType) Suffix() string {
	switch t {
	case ApplicationTypeChore:
		return ".chore"
	case ApplicationTypeCube:
		return ".cube"
	case ApplicationTypeDimension:
		return ".dimension"
	case ApplicationTypeDocument:
		return ".blob"
	case ApplicationTypeLink:
		return ".extr"
	case ApplicationTypeProcess:
		return ".process"
	case ApplicationTypeSubset:
		return ".subset"
	case ApplicationTypeView:
		return ".view"
	default:
		return ""
	}
}

// ParseApplicationType parses an application type name case-insensitively
func ParseApplicationType(value string) (ApplicationType, error) {
	for _, t := range []ApplicationType{
		ApplicationTypeFolder, ApplicationTypeCube, ApplicationTypeChore,
		ApplicationTypeDimension, ApplicationTypeProcess, ApplicationTypeSubset,
		ApplicationTypeView, ApplicationTypeLink, ApplicationTypeDocument,
	} {
		if NamesEqual(t.String(), value) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid application type: '%s'", value)
}

// Application is one entry in the folder tree under Contents('Applications').
// Reference entries point at another object, links carry a URL.
type Application struct {
	Path string
	Name string
	Type ApplicationType

	// reference targets, filled depending on Type
	CubeName      string
	DimensionName string
	HierarchyName string
	SubsetName    string
	ViewName      string
	ProcessName   string
	ChoreName     string
	URL           string
	Private       bool
}

// NewFolderApplication creates a folder entry
func NewFolderApplication(path, name string) *Application {
	return &Application{Path: path, Name: name, Type: ApplicationTypeFolder}
}

// Body builds the creation body of the entry
func (a *Application) Body() (string, error) {
	body := make(map[string]interface{})
	body["@odata.type"] = a.Type.ODataType()
	body["Name"] = a.Name
	switch a.Type {
	case ApplicationTypeCube:
		body["Cube@odata.bind"] = rest.FormatURL("Cubes('%s')", a.CubeName)
	case ApplicationTypeChore:
		body["Chore@odata.bind"] = rest.FormatURL("Chores('%s')", a.ChoreName)
	case ApplicationTypeDimension:
		body["Dimension@odata.bind"] = rest.FormatURL("Dimensions('%s')", a.DimensionName)
	case ApplicationTypeProcess:
		body["Process@odata.bind"] = rest.FormatURL("Processes('%s')", a.ProcessName)
	case ApplicationTypeSubset:
		hierarchy := a.HierarchyName
		if hierarchy == "" {
			hierarchy = a.DimensionName
		}
		body["Subset@odata.bind"] = rest.FormatURL(
			"Dimensions('%s')/Hierarchies('%s')/Subsets('%s')",
			a.DimensionName, hierarchy, a.SubsetName)
	case ApplicationTypeView:
		body["View@odata.bind"] = rest.FormatURL(
			"Cubes('%s')/Views('%s')", a.CubeName, a.ViewName)
	case ApplicationTypeLink:
		body["URL"] = a.URL
	}
	data, err := json.Marshal(body)
	return string(data), err
}
