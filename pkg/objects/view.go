/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cubewise-code/tm1go/pkg/rest"
)

// View is implemented by both native and MDX views
type View interface {
	ViewName() string
	CubeName() string
	Body() (string, error)
}

const defaultFormatString = "0.#########"

// ViewAxisSelection places a subset on a view axis. Either SubsetName points
// at a registered subset or Subset carries an inline definition.
type ViewAxisSelection struct {
	DimensionName string
	HierarchyName string
	SubsetName    string
	Subset        *AnonymousSubset
}

func (s ViewAxisSelection) bodyAsMap() (map[string]interface{}, error) {
	body := make(map[string]interface{})
	if s.SubsetName != "" {
		hierarchy := s.HierarchyName
		if hierarchy == "" {
			hierarchy = s.DimensionName
		}
		body["Subset@odata.bind"] = rest.FormatURL(
			"Dimensions('%s')/Hierarchies('%s')/Subsets('%s')",
			s.DimensionName, hierarchy, s.SubsetName)
		return body, nil
	}
	if s.Subset == nil {
		return nil, fmt.Errorf("axis selection on '%s' has neither a subset name nor an inline subset",
			s.DimensionName)
	}
	inline, err := s.Subset.Body()
	if err != nil {
		return nil, err
	}
	body["Subset"] = json.RawMessage(inline)
	return body, nil
}

// ViewTitleSelection pins one element of a subset in the view titles
type ViewTitleSelection struct {
	ViewAxisSelection
	Selected string
}

func (s ViewTitleSelection) bodyAsMap() (map[string]interface{}, error) {
	body, err := s.ViewAxisSelection.bodyAsMap()
	if err != nil {
		return nil, err
	}
	hierarchy := s.HierarchyName
	if hierarchy == "" {
		hierarchy = s.DimensionName
	}
	body["Selected@odata.bind"] = rest.FormatURL(
		"Dimensions('%s')/Hierarchies('%s')/Elements('%s')",
		s.DimensionName, hierarchy, s.Selected)
	return body, nil
}

// NativeView mirrors a classic cube view built from axis subsets
type NativeView struct {
	Cube                 string
	Name                 string
	Columns              []ViewAxisSelection
	Rows                 []ViewAxisSelection
	Titles               []ViewTitleSelection
	SuppressEmptyColumns bool
	SuppressEmptyRows    bool
	FormatString         string
}

// NewNativeView creates an empty native view on the cube
func NewNativeView(cubeName, viewName string) *NativeView {
	return &NativeView{
		Cube:         cubeName,
		Name:         viewName,
		FormatString: defaultFormatString,
	}
}

// ViewName returns the name of the view
func (v *NativeView) ViewName() string { return v.Name }

// CubeName returns the cube the view belongs to
func (v *NativeView) CubeName() string { return v.Cube }

// AddColumn places a subset on the column axis
func (v *NativeView) AddColumn(selection ViewAxisSelection) {
	v.Columns = append(v.Columns, selection)
}

// AddRow places a subset on the row axis
func (v *NativeView) AddRow(selection ViewAxisSelection) {
	v.Rows = append(v.Rows, selection)
}

// AddTitle pins an element in the view titles
func (v *NativeView) AddTitle(selection ViewTitleSelection) {
	v.Titles = append(v.Titles, selection)
}

// SuppressEmptyCells toggles suppression on both axes
func (v *NativeView) SuppressEmptyCells(suppress bool) {
	v.SuppressEmptyColumns = suppress
	v.SuppressEmptyRows = suppress
}

// Body builds the creation body of the native view
func (v *NativeView) Body() (string, error) {
	body := make(map[string]interface{})
	body["@odata.type"] = "ibm.tm1.api.v1.NativeView"
	body["Name"] = v.Name

	columns := make([]map[string]interface{}, 0, len(v.Columns))
	for _, selection := range v.Columns {
		m, err := selection.bodyAsMap()
		if err != nil {
			return "", err
		}
		columns = append(columns, m)
	}
	body["Columns"] = columns

	rows := make([]map[string]interface{}, 0, len(v.Rows))
	for _, selection := range v.Rows {
		m, err := selection.bodyAsMap()
		if err != nil {
			return "", err
		}
		rows = append(rows, m)
	}
	body["Rows"] = rows

	titles := make([]map[string]interface{}, 0, len(v.Titles))
	for _, selection := range v.Titles {
		m, err := selection.bodyAsMap()
		if err != nil {
			return "", err
		}
		titles = append(titles, m)
	}
	body["Titles"] = titles

	body["SuppressEmptyColumns"] = v.SuppressEmptyColumns
	body["SuppressEmptyRows"] = v.SuppressEmptyRows
	formatString := v.FormatString
	if formatString == "" {
		formatString = defaultFormatString
	}
	body["FormatString"] = formatString

	data, err := json.Marshal(body)
	return string(data), err
}

// MDX renders the view as an MDX statement. Named subsets become
// TM1SubsetToSet calls, inline subsets use their expression or element list.
func (v *NativeView) MDX() string {
	axisToSet := func(selections []ViewAxisSelection) string {
		sets := make([]string, 0, len(selections))
		for _, selection := range selections {
			hierarchy := selection.HierarchyName
			if hierarchy == "" {
				hierarchy = selection.DimensionName
			}
			switch {
			case selection.SubsetName != "":
				sets = append(sets, fmt.Sprintf("{TM1SUBSETTOSET([%s].[%s],\"%s\")}",
					selection.DimensionName, hierarchy, selection.SubsetName))
			case selection.Subset != nil && selection.Subset.IsDynamic():
				sets = append(sets, "{"+selection.Subset.Expression+"}")
			case selection.Subset != nil:
				members := make([]string, 0, len(selection.Subset.Elements))
				for _, element := range selection.Subset.Elements {
					members = append(members, fmt.Sprintf("[%s].[%s].[%s]",
						selection.DimensionName, hierarchy, element))
				}
				sets = append(sets, "{"+strings.Join(members, ",")+"}")
			}
		}
		if len(sets) == 0 {
			return ""
		}
		set := sets[0]
		for _, next := range sets[1:] {
			set = fmt.Sprintf("%s*%s", set, next)
		}
		return set
	}

	rowSuppression, columnSuppression := "", ""
	if v.SuppressEmptyRows {
		rowSuppression = "NON EMPTY "
	}
	if v.SuppressEmptyColumns {
		columnSuppression = "NON EMPTY "
	}

	mdx := fmt.Sprintf("SELECT %s%s ON 0", columnSuppression, axisToSet(v.Columns))
	if rows := axisToSet(v.Rows); rows != "" {
		mdx += fmt.Sprintf(", %s%s ON 1", rowSuppression, rows)
	}
	mdx += fmt.Sprintf(" FROM [%s]", v.Cube)

	if len(v.Titles) > 0 {
		members := make([]string, 0, len(v.Titles))
		for _, title := range v.Titles {
			hierarchy := title.HierarchyName
			if hierarchy == "" {
				hierarchy = title.DimensionName
			}
			members = append(members, fmt.Sprintf("[%s].[%s].[%s]",
				title.DimensionName, hierarchy, title.Selected))
		}
		mdx += fmt.Sprintf(" WHERE (%s)", strings.Join(members, ","))
	}
	return mdx
}

type rawViewSubset struct {
	Name       string `json:"Name"`
	Alias      string `json:"Alias"`
	Expression string `json:"Expression"`
	Hierarchy  *struct {
		Name      string `json:"Name"`
		Dimension struct {
			Name string `json:"Name"`
		} `json:"Dimension"`
	} `json:"Hierarchy"`
	Elements []struct {
		Name string `json:"Name"`
	} `json:"Elements"`
}

func (raw rawViewSubset) toSelection() ViewAxisSelection {
	selection := ViewAxisSelection{}
	if raw.Hierarchy != nil {
		selection.DimensionName = raw.Hierarchy.Dimension.Name
		selection.HierarchyName = raw.Hierarchy.Name
	}
	if raw.Name != "" {
		selection.SubsetName = raw.Name
		return selection
	}
	elements := make([]string, 0, len(raw.Elements))
	for _, element := range raw.Elements {
		elements = append(elements, element.Name)
	}
	selection.Subset = NewAnonymousSubset(
		selection.DimensionName, selection.HierarchyName, raw.Expression, elements)
	return selection
}

// NativeViewFromJSON parses the expanded server representation of a native view
func NativeViewFromJSON(cubeName string, data []byte) (*NativeView, error) {
	var raw struct {
		Name    string `json:"Name"`
		Columns []struct {
			Subset rawViewSubset `json:"Subset"`
		} `json:"Columns"`
		Rows []struct {
			Subset rawViewSubset `json:"Subset"`
		} `json:"Rows"`
		Titles []struct {
			Subset   rawViewSubset `json:"Subset"`
			Selected *struct {
				Name string `json:"Name"`
			} `json:"Selected"`
		} `json:"Titles"`
		SuppressEmptyColumns bool   `json:"SuppressEmptyColumns"`
		SuppressEmptyRows    bool   `json:"SuppressEmptyRows"`
		FormatString         string `json:"FormatString"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	view := NewNativeView(cubeName, raw.Name)
	view.SuppressEmptyColumns = raw.SuppressEmptyColumns
	view.SuppressEmptyRows = raw.SuppressEmptyRows
	if raw.FormatString != "" {
		view.FormatString = raw.FormatString
	}
	for _, column := range raw.Columns {
		view.AddColumn(column.Subset.toSelection())
	}
	for _, row := range raw.Rows {
		view.AddRow(row.Subset.toSelection())
	}
	for _, title := range raw.Titles {
		selection := ViewTitleSelection{ViewAxisSelection: title.Subset.toSelection()}
		if title.Selected != nil {
			selection.Selected = title.Selected.Name
		}
		view.AddTitle(selection)
	}
	return view, nil
}

// MDXView mirrors a view defined directly by an MDX statement
type MDXView struct {
	Cube string
	Name string
	MDX  string
}

// NewMDXView creates an MDX view on the cube
func NewMDXView(cubeName, viewName, mdx string) *MDXView {
	return &MDXView{Cube: cubeName, Name: viewName, MDX: mdx}
}

// ViewName returns the name of the view
func (v *MDXView) ViewName() string { return v.Name }

// CubeName returns the cube the view belongs to
func (v *MDXView) CubeName() string { return v.Cube }

// Body builds the creation body of the MDX view
func (v *MDXView) Body() (string, error) {
	data, err := json.Marshal(map[string]string{
		"@odata.type": "ibm.tm1.api.v1.MDXView",
		"Name":        v.Name,
		"MDX":         v.MDX,
	})
	return string(data), err
}

// MDXViewFromJSON parses the server representation of an MDX view
func MDXViewFromJSON(cubeName string, data []byte) (*MDXView, error) {
	var raw struct {
		Name string `json:"Name"`
		MDX  string `json:"MDX"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return NewMDXView(cubeName, raw.Name, raw.MDX), nil
}
