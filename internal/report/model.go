package report

import "encoding/xml"

// TestModule is the root element of a CANoe test report.
type TestModule struct {
	XMLName       xml.Name    `xml:"testmodule"`
	StartTime     string      `xml:"starttime,attr"`
	Timestamp     string      `xml:"timestamp,attr"`
	Verdicts      string      `xml:"verdicts,attr"`
	MeasurementID string      `xml:"measurementid,attr"`
	Setup         TestSetup   `xml:"testsetup"`
	Groups        []TestGroup `xml:"testgroup"`
}

// TestSetup carries the module description block.
type TestSetup struct {
	XInfo XInfo `xml:"xinfo"`
}

type XInfo struct {
	Name        string `xml:"name,attr"`
	Description string `xml:"description"`
}

// TestGroup holds either nested groups or leaf test entries.
type TestGroup struct {
	Title   string        `xml:"title"`
	Groups  []TestGroup   `xml:"testgroup,omitempty"`
	Cases   []TestCase    `xml:"testcase,omitempty"`
	Skipped []SkippedTest `xml:"skipped,omitempty"`
}

type TestCase struct {
	Timestamp string     `xml:"timestamp,attr"`
	StartTime string     `xml:"starttime,attr"`
	Title     string     `xml:"title"`
	Steps     []TestStep `xml:"teststep"`
	Verdict   Verdict    `xml:"verdict"`
}

type TestStep struct {
	Timestamp string       `xml:"timestamp,attr"`
	Level     int          `xml:"level,attr"`
	Type      string       `xml:"type,attr"`
	Ident     string       `xml:"ident,attr"`
	Result    string       `xml:"result,attr"`
	Text      string       `xml:",chardata"`
	Tabular   *TabularInfo `xml:"tabularinfo,omitempty"`
}

// TabularInfo is the failure detail table attached to failing steps.
type TabularInfo struct {
	Rows []TableRow `xml:"row"`
}

type TableRow struct {
	Cells []string `xml:"cell"`
}

type Verdict struct {
	Timestamp string `xml:"timestamp,attr"`
	Result    string `xml:"result,attr"`
}

type SkippedTest struct {
	Title string `xml:"title"`
}
