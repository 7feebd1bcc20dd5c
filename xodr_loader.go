package xodrqc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// lineIndex maps byte offsets in the raw input onto 1-based row/column pairs
type lineIndex []int64

func newLineIndex(data []byte) lineIndex {
	index := lineIndex{0}
	for i, b := range data {
		if b == '\n' {
			index = append(index, int64(i)+1)
		}
	}
	return index
}

func (index lineIndex) position(offset int64) (int, int) {
	line := sort.Search(len(index), func(i int) bool { return index[i] > offset }) - 1
	return line + 1, int(offset-index[line]) + 1
}

// xmlNode is one element of the parsed document tree. The tree is kept only
// long enough to build the typed model and the source locations.
type xmlNode struct {
	tag      string
	attrs    []xml.Attr
	parent   *xmlNode
	children []*xmlNode
	row      int
	col      int
}

func (node *xmlNode) attr(name string) (string, bool) {
	for i := range node.attrs {
		if node.attrs[i].Name.Local == name {
			return node.attrs[i].Value, true
		}
	}
	return "", false
}

func (node *xmlNode) firstChild(tag string) *xmlNode {
	for _, child := range node.children {
		if child.tag == tag {
			return child
		}
	}
	return nil
}

func (node *xmlNode) childrenByTag(tag string) []*xmlNode {
	var matched []*xmlNode
	for _, child := range node.children {
		if child.tag == tag {
			matched = append(matched, child)
		}
	}
	return matched
}

// xpath renders the element path in document order. A positional predicate is
// added only when the parent holds more than one child with the same tag.
func (node *xmlNode) xpath() string {
	if node.parent == nil {
		return "/" + node.tag
	}
	segment := node.tag
	same := 0
	position := 0
	for _, sibling := range node.parent.children {
		if sibling.tag == node.tag {
			same++
			if sibling == node {
				position = same
			}
		}
	}
	if same > 1 {
		segment = fmt.Sprintf("%s[%d]", node.tag, position)
	}
	return node.parent.xpath() + "/" + segment
}

func (node *xmlNode) location() Location {
	return Location{XPath: node.xpath(), Row: node.row, Column: node.col}
}

// parseXMLTree reads the whole document into an element tree, remembering the
// source position of every element
func parseXMLTree(data []byte) (*xmlNode, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	index := newLineIndex(data)
	var root *xmlNode
	var current *xmlNode
	for {
		start := decoder.InputOffset()
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch typed := token.(type) {
		case xml.StartElement:
			row, col := index.position(start)
			node := &xmlNode{
				tag:    typed.Name.Local,
				attrs:  typed.Attr,
				parent: current,
				row:    row,
				col:    col,
			}
			if current == nil {
				if root != nil {
					return nil, errors.New("Multiple document elements")
				}
				root = node
			} else {
				current.children = append(current.children, node)
			}
			current = node
		case xml.EndElement:
			if current != nil {
				current = current.parent
			}
		}
	}
	if root == nil {
		return nil, errors.New("No document element found")
	}
	return root, nil
}

// MalformedValue is an attribute that failed strict parsing. The carrying
// entity is excluded from the affected comparisons and the record surfaces as
// a finding, so a bad value can never abort the run.
type MalformedValue struct {
	Description string
	Location    Location
}

// ParseReport carries everything the basic checkers need to judge the file
// before the typed model is trusted
type ParseReport struct {
	XMLError     error
	XMLErrorLine int

	RootTag      string
	RootLocation Location

	HeaderFound    bool
	HeaderLocation Location

	RevMajorRaw string
	RevMinorRaw string
	VersionOK   bool

	Malformed []MalformedValue
}

func (report *ParseReport) addMalformed(description string, location Location) {
	report.Malformed = append(report.Malformed, MalformedValue{Description: description, Location: location})
}

// Loader reads one .xodr file into a Document
type Loader struct {
	filename string
	logger   *zap.SugaredLogger
}

func NewLoader(fileName string, options ...func(*Loader)) *Loader {
	loader := &Loader{
		filename: fileName,
		logger:   zap.NewNop().Sugar(),
	}
	for _, option := range options {
		option(loader)
	}
	return loader
}

func WithLoaderLogger(logger *zap.SugaredLogger) func(*Loader) {
	return func(loader *Loader) {
		loader.logger = logger
	}
}

// Load reads and parses the input file. I/O failures are returned as errors;
// malformed content never is, it lands in the ParseReport instead. The
// document is nil when the file is not well-formed XML.
func (loader *Loader) Load() (*Document, *ParseReport, error) {
	data, err := os.ReadFile(loader.filename)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't read input file")
	}
	document, report := loader.LoadBytes(data)
	return document, report, nil
}

// LoadBytes parses in-memory content, see Load
func (loader *Loader) LoadBytes(data []byte) (*Document, *ParseReport) {
	report := &ParseReport{}
	root, err := parseXMLTree(data)
	if err != nil {
		report.XMLError = err
		if syntaxError, ok := err.(*xml.SyntaxError); ok {
			report.XMLErrorLine = syntaxError.Line
		}
		return nil, report
	}
	report.RootTag = root.tag
	report.RootLocation = root.location()

	document := &Document{FileName: loader.filename}
	if header := root.firstChild("header"); header != nil {
		report.HeaderFound = true
		report.HeaderLocation = header.location()
		report.RevMajorRaw, _ = header.attr("revMajor")
		report.RevMinorRaw, _ = header.attr("revMinor")
		major, errMajor := strconv.Atoi(strings.TrimSpace(report.RevMajorRaw))
		minor, errMinor := strconv.Atoi(strings.TrimSpace(report.RevMinorRaw))
		if errMajor == nil && errMinor == nil {
			report.VersionOK = true
			document.Version = fmt.Sprintf("%d.%d", major, minor)
		}
	}

	builder := &treeBuilder{report: report}
	for _, roadNode := range root.childrenByTag("road") {
		if road := builder.buildRoad(roadNode); road != nil {
			document.Roads = append(document.Roads, road)
		}
	}
	for _, junctionNode := range root.childrenByTag("junction") {
		if junction := builder.buildJunction(junctionNode); junction != nil {
			document.Junctions = append(document.Junctions, junction)
		}
	}
	document.buildIndexes()
	loader.logger.Debugf("Parsed %d roads and %d junctions from '%s'", len(document.Roads), len(document.Junctions), loader.filename)
	return document, report
}

// treeBuilder converts the element tree into the typed model, collecting
// malformed-value records along the way
type treeBuilder struct {
	report *ParseReport
}

func (builder *treeBuilder) intAttr(node *xmlNode, name, subject string) (int, bool) {
	raw, ok := node.attr(name)
	if !ok {
		builder.report.addMalformed(fmt.Sprintf("%s misses required attribute %q.", subject, name), node.location())
		return 0, false
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		builder.report.addMalformed(fmt.Sprintf("%s attribute %s=%q is not a valid integer.", subject, name, raw), node.location())
		return 0, false
	}
	return value, true
}

func (builder *treeBuilder) floatAttr(node *xmlNode, name, subject string) (float64, bool) {
	raw, ok := node.attr(name)
	if !ok {
		builder.report.addMalformed(fmt.Sprintf("%s misses required attribute %q.", subject, name), node.location())
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !isFinite(value) {
		builder.report.addMalformed(fmt.Sprintf("%s attribute %s=%q is not a finite number.", subject, name, raw), node.location())
		return 0, false
	}
	return value, true
}

func (builder *treeBuilder) cubicAttrs(node *xmlNode, nameA, nameB, nameC, nameD, subject string) (Cubic, bool) {
	a, okA := builder.floatAttr(node, nameA, subject)
	b, okB := builder.floatAttr(node, nameB, subject)
	c, okC := builder.floatAttr(node, nameC, subject)
	d, okD := builder.floatAttr(node, nameD, subject)
	return Cubic{A: a, B: b, C: c, D: d}, okA && okB && okC && okD
}

func (builder *treeBuilder) buildRoad(node *xmlNode) *Road {
	id, ok := builder.intAttr(node, "id", "Road")
	if !ok {
		return nil
	}
	road := &Road{
		ID:         RoadID(id),
		Junction:   NoJunction,
		Location:   node.location(),
		geometryOK: true,
	}
	if raw, ok := node.attr("junction"); ok {
		junctionID, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			builder.report.addMalformed(fmt.Sprintf("Road %d attribute junction=%q is not a valid integer.", id, raw), node.location())
		} else {
			road.Junction = JunctionID(junctionID)
		}
	}
	if link := node.firstChild("link"); link != nil {
		road.Predecessor = builder.buildLinkage(link.firstChild("predecessor"), id)
		road.Successor = builder.buildLinkage(link.firstChild("successor"), id)
	}
	if planView := node.firstChild("planView"); planView != nil {
		for _, geometryNode := range planView.childrenByTag("geometry") {
			segment, ok := builder.buildGeometry(geometryNode, id)
			if !ok {
				road.geometryOK = false
				continue
			}
			road.PlanView = append(road.PlanView, segment)
		}
	}
	road.ElevationLocation = node.location()
	if profile := node.firstChild("elevationProfile"); profile != nil {
		road.ElevationLocation = profile.location()
		for _, elevationNode := range profile.childrenByTag("elevation") {
			subject := fmt.Sprintf("Elevation of road %d", id)
			s, okS := builder.floatAttr(elevationNode, "s", subject)
			poly, okPoly := builder.cubicAttrs(elevationNode, "a", "b", "c", "d", subject)
			if !okS || !okPoly {
				continue
			}
			road.Elevations = append(road.Elevations, ElevationRecord{S: s, Poly: poly, Location: elevationNode.location()})
		}
	}
	if lanes := node.firstChild("lanes"); lanes != nil {
		for _, sectionNode := range lanes.childrenByTag("laneSection") {
			road.LaneSections = append(road.LaneSections, builder.buildLaneSection(sectionNode, id))
		}
	}
	return road
}

func (builder *treeBuilder) buildLinkage(node *xmlNode, roadID int) Linkage {
	if node == nil {
		return Linkage{Kind: LINKAGE_NONE}
	}
	location := node.location()
	subject := fmt.Sprintf("Road %d link %s", roadID, node.tag)
	elementType, _ := node.attr("elementType")
	var kind LinkageKind
	switch elementType {
	case "road":
		kind = LINKAGE_ROAD
	case "junction":
		kind = LINKAGE_JUNCTION
	default:
		builder.report.addMalformed(fmt.Sprintf("%s attribute elementType=%q is neither road nor junction.", subject, elementType), location)
		return Linkage{Kind: LINKAGE_NONE, Location: location}
	}
	elementID, ok := builder.intAttr(node, "elementId", subject)
	if !ok {
		return Linkage{Kind: LINKAGE_NONE, Location: location}
	}
	linkage := Linkage{
		Kind:         kind,
		ElementID:    elementID,
		ContactPoint: CONTACT_POINT_NONE,
		Location:     location,
	}
	if raw, ok := node.attr("contactPoint"); ok {
		switch raw {
		case "start":
			linkage.ContactPoint = CONTACT_POINT_START
		case "end":
			linkage.ContactPoint = CONTACT_POINT_END
		default:
			builder.report.addMalformed(fmt.Sprintf("%s attribute contactPoint=%q is neither start nor end.", subject, raw), location)
		}
	}
	return linkage
}

func (builder *treeBuilder) buildGeometry(node *xmlNode, roadID int) (GeometrySegment, bool) {
	subject := fmt.Sprintf("Geometry of road %d", roadID)
	segment := GeometrySegment{Location: node.location()}
	s, okS := builder.floatAttr(node, "s", subject)
	x, okX := builder.floatAttr(node, "x", subject)
	y, okY := builder.floatAttr(node, "y", subject)
	hdg, okHdg := builder.floatAttr(node, "hdg", subject)
	length, okLength := builder.floatAttr(node, "length", subject)
	if !okS || !okX || !okY || !okHdg || !okLength {
		return segment, false
	}
	if length < 0 {
		builder.report.addMalformed(fmt.Sprintf("%s attribute length=%q is negative.", subject, strconv.FormatFloat(length, 'g', -1, 64)), node.location())
		return segment, false
	}
	segment.S, segment.X, segment.Y, segment.Hdg, segment.Length = s, x, y, hdg, length
	if shape := node.firstChild("line"); shape != nil {
		segment.Kind = GEOMETRY_LINE
	} else if shape := node.firstChild("arc"); shape != nil {
		segment.Kind = GEOMETRY_ARC
		curvature, ok := builder.floatAttr(shape, "curvature", subject)
		if !ok {
			return segment, false
		}
		segment.Curvature = curvature
	} else if shape := node.firstChild("spiral"); shape != nil {
		segment.Kind = GEOMETRY_SPIRAL
		curvStart, okStart := builder.floatAttr(shape, "curvStart", subject)
		curvEnd, okEnd := builder.floatAttr(shape, "curvEnd", subject)
		if !okStart || !okEnd {
			return segment, false
		}
		segment.CurvStart, segment.CurvEnd = curvStart, curvEnd
	} else if shape := node.firstChild("poly3"); shape != nil {
		segment.Kind = GEOMETRY_POLY3
		poly, ok := builder.cubicAttrs(shape, "a", "b", "c", "d", subject)
		if !ok {
			return segment, false
		}
		segment.Poly = poly
	} else if shape := node.firstChild("paramPoly3"); shape != nil {
		segment.Kind = GEOMETRY_PARAM_POLY3
		polyU, okU := builder.cubicAttrs(shape, "aU", "bU", "cU", "dU", subject)
		polyV, okV := builder.cubicAttrs(shape, "aV", "bV", "cV", "dV", subject)
		if !okU || !okV {
			return segment, false
		}
		segment.PolyU, segment.PolyV = polyU, polyV
		segment.PRange = 1
		if raw, ok := shape.attr("pRange"); ok {
			switch raw {
			case "normalized":
				segment.PRange = 1
			case "arcLength":
				segment.PRange = segment.Length
			default:
				builder.report.addMalformed(fmt.Sprintf("%s attribute pRange=%q is neither arcLength nor normalized.", subject, raw), shape.location())
				return segment, false
			}
		}
	} else {
		builder.report.addMalformed(fmt.Sprintf("%s misses its shape element.", subject), node.location())
		return segment, false
	}
	return segment, true
}

func (builder *treeBuilder) buildLaneSection(node *xmlNode, roadID int) *LaneSection {
	section := &LaneSection{Location: node.location()}
	if raw, ok := node.attr("s"); ok {
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || !isFinite(value) {
			builder.report.addMalformed(fmt.Sprintf("Lane section of road %d attribute s=%q is not a finite number.", roadID, raw), node.location())
		} else {
			section.S = value
		}
	}
	for _, groupTag := range []string{"left", "center", "right"} {
		group := node.firstChild(groupTag)
		if group == nil {
			continue
		}
		for _, laneNode := range group.childrenByTag("lane") {
			if lane := builder.buildLane(laneNode, roadID); lane != nil {
				section.Lanes = append(section.Lanes, lane)
			}
		}
	}
	return section
}

func (builder *treeBuilder) buildLane(node *xmlNode, roadID int) *Lane {
	id, ok := builder.intAttr(node, "id", fmt.Sprintf("Lane of road %d", roadID))
	if !ok {
		return nil
	}
	lane := &Lane{ID: LaneID(id), Location: node.location()}
	if link := node.firstChild("link"); link != nil {
		lane.Predecessor = builder.buildLaneLinkID(link.firstChild("predecessor"), roadID)
		lane.Successor = builder.buildLaneLinkID(link.firstChild("successor"), roadID)
	}
	return lane
}

func (builder *treeBuilder) buildLaneLinkID(node *xmlNode, roadID int) *LaneID {
	if node == nil {
		return nil
	}
	id, ok := builder.intAttr(node, "id", fmt.Sprintf("Lane link of road %d", roadID))
	if !ok {
		return nil
	}
	laneID := LaneID(id)
	return &laneID
}

func (builder *treeBuilder) buildJunction(node *xmlNode) *Junction {
	id, ok := builder.intAttr(node, "id", "Junction")
	if !ok {
		return nil
	}
	junction := &Junction{ID: JunctionID(id), Location: node.location()}
	for _, connectionNode := range node.childrenByTag("connection") {
		if connection := builder.buildConnection(connectionNode, id); connection != nil {
			junction.Connections = append(junction.Connections, connection)
		}
	}
	return junction
}

func (builder *treeBuilder) buildConnection(node *xmlNode, junctionID int) *Connection {
	subject := fmt.Sprintf("Connection of junction %d", junctionID)
	id, okID := builder.intAttr(node, "id", subject)
	incoming, okIncoming := builder.intAttr(node, "incomingRoad", subject)
	connecting, okConnecting := builder.intAttr(node, "connectingRoad", subject)
	if !okID || !okIncoming || !okConnecting {
		return nil
	}
	connection := &Connection{
		ID:             ConnectionID(id),
		IncomingRoad:   RoadID(incoming),
		ConnectingRoad: RoadID(connecting),
		ContactPoint:   CONTACT_POINT_NONE,
		Location:       node.location(),
	}
	if raw, ok := node.attr("contactPoint"); ok {
		switch raw {
		case "start":
			connection.ContactPoint = CONTACT_POINT_START
		case "end":
			connection.ContactPoint = CONTACT_POINT_END
		default:
			builder.report.addMalformed(fmt.Sprintf("%s attribute contactPoint=%q is neither start nor end.", subject, raw), node.location())
		}
	}
	for _, linkNode := range node.childrenByTag("laneLink") {
		from, okFrom := builder.intAttr(linkNode, "from", subject)
		to, okTo := builder.intAttr(linkNode, "to", subject)
		if !okFrom || !okTo {
			continue
		}
		connection.LaneLinks = append(connection.LaneLinks, LaneLink{From: LaneID(from), To: LaneID(to), Location: linkNode.location()})
	}
	return connection
}
