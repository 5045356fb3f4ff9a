package report

import (
	"encoding/xml"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devflow-tools/wtm/internal/logging"
)

// Options controls a batch generation run.
type Options struct {
	Count        int    // number of XML files
	Groups       int    // test groups per file
	Nested       bool   // allow nested groups
	Prefix       string // filename prefix
	Seed         int64  // base seed; each file uses Seed + index
	Seeded       bool   // whether Seed was supplied
	RandomGroups bool   // randomize group count per file in [1, Groups]
}

// DefaultOptions returns the standard batch settings.
func DefaultOptions() Options {
	return Options{Count: 20, Groups: 10, Prefix: "test_"}
}

// moduleStart is the report start time of the first file; each
// subsequent file starts one minute later.
var moduleStart = time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)

// caseStart anchors per-case start times, offset by the running
// timestamp within the module.
var caseStart = time.Date(2024, 1, 25, 10, 0, 0, 0, time.UTC)

var (
	stepDescriptions = []string{
		"Initialize diagnostic session", "Send request frame", "Wait for response",
		"Verify response data", "Check timing constraints", "Validate checksum",
		"Read DTC memory", "Clear DTC status", "Switch to extended session",
		"Security access request", "Read data by identifier", "Write data by identifier",
		"ECU reset", "Communication control", "Tester present", "Control DTC setting",
		"Check voltage level", "Measure temperature", "Validate signal timing",
		"Check bus load", "Verify node availability",
	}
	stepTypes = []string{"user", "auto", "system"}

	testTypes = []string{
		"UDS", "DTC", "CAN", "Diagnostic", "Communication", "Memory",
		"Security", "Session", "Reset", "Voltage", "Temperature", "Timing",
	}
	testActions = []string{
		"Read", "Write", "Check", "Verify", "Validate", "Test",
		"Monitor", "Control", "Initialize", "Reset",
	}
	testTargets = []string{
		"DID", "DTC", "Memory", "Status", "Data", "Signal",
		"Frame", "Service", "Session", "Access",
	}

	groupTypes = []string{
		"Communication", "Diagnostic", "Network", "Memory", "Security",
		"Session", "DTC", "UDS", "CAN", "System", "Integration", "Functional",
	}
	groupAreas = []string{"Tests", "Checks", "Validation", "Scenarios", "Cases", "Suite"}

	skipReasons = []string{
		"Prerequisites_Not_Met", "Environment_Not_Ready", "HW_Not_Available",
		"SW_Version_Mismatch", "Configuration_Missing", "Dependency_Failed",
		"Timeout_Prevention", "Manual_Execution_Only", "Not_Applicable",
	}

	diagServices = [][2]string{
		{"ReadDataByIdentifier", "0x22"}, {"WriteDataByIdentifier", "0x2E"},
		{"ReadDTCInformation", "0x19"}, {"ClearDiagnosticInformation", "0x14"},
		{"DiagnosticSessionControl", "0x10"}, {"ECUReset", "0x11"},
		{"SecurityAccess", "0x27"}, {"CommunicationControl", "0x28"},
		{"TesterPresent", "0x3E"}, {"ControlDTCSetting", "0x85"},
	}
	negativeResponses = [][3]string{
		{"7F 22 78", "0x7F2278", "Response pending timeout"},
		{"7F 22 31", "0x7F2231", "Request out of range"},
		{"7F 27 35", "0x7F2735", "Invalid key"},
		{"7F 31 22", "0x7F3122", "Conditions not correct"},
	}
)

// Generate writes Count report files into dir and returns their paths.
// The directory is created if missing.
func Generate(dir string, opts Options) ([]string, error) {
	if opts.Count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", opts.Count)
	}
	if opts.Groups < 1 {
		return nil, fmt.Errorf("groups must be at least 1, got %d", opts.Groups)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	batchRng := newRng(opts.Seeded, opts.Seed)

	var paths []string
	for i := 1; i <= opts.Count; i++ {
		groups := opts.Groups
		if opts.RandomGroups {
			groups = batchRng.Intn(opts.Groups) + 1
		}

		rng := batchRng
		if opts.Seeded {
			rng = rand.New(rand.NewSource(opts.Seed + int64(i)))
		}

		module := BuildModule(rng, groups, opts.Nested, i)
		path := filepath.Join(dir, fmt.Sprintf("%s%03d.xml", opts.Prefix, i))
		if err := writeModule(path, module); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		logging.Debug("generated report", "path", path, "groups", groups)
	}
	return paths, nil
}

func newRng(seeded bool, seed int64) *rand.Rand {
	if seeded {
		return rand.New(rand.NewSource(seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// BuildModule produces a single report document. fileIndex offsets the
// module start time so every file in a batch is distinct.
func BuildModule(rng *rand.Rand, groups int, nested bool, fileIndex int) *TestModule {
	start := moduleStart.Add(time.Duration(fileIndex) * time.Minute)

	module := &TestModule{
		StartTime:     start.Format("2006-01-02 15:04:05"),
		Timestamp:     "0.0",
		Verdicts:      "2_basic",
		MeasurementID: fmt.Sprintf("%08d-ffff-4444-82aa-af7cs55583", rng.Intn(90000000)+10000000),
		Setup: TestSetup{XInfo: XInfo{
			Name:        "Test Module Name",
			Description: fmt.Sprintf("Stress Test Module with %d Groups", groups),
		}},
	}

	now := 10.0
	for num := 1; num <= groups; num++ {
		var group TestGroup
		group, now = buildGroup(rng, now, fmt.Sprintf("%03d", num), 1, nested)
		module.Groups = append(module.Groups, group)
		now += 5.0 + rng.Float64()*10.0
	}
	return module
}

func buildGroup(rng *rand.Rand, now float64, id string, level int, nested bool) (TestGroup, float64) {
	const maxLevel = 3

	group := TestGroup{Title: fmt.Sprintf("%sLevel%d_%s_%s_%s",
		strings.Repeat("  ", level-1), level,
		groupTypes[rng.Intn(len(groupTypes))],
		groupAreas[rng.Intn(len(groupAreas))], id)}

	now += 1.0
	if nested && level < maxLevel && rng.Float64() < 0.3 {
		count := rng.Intn(3) + 1
		for n := 1; n <= count; n++ {
			var child TestGroup
			child, now = buildGroup(rng, now, fmt.Sprintf("%s_%d", id, n), level+1, nested)
			group.Groups = append(group.Groups, child)
			now += 2.0 + rng.Float64()*3.0
		}
		return group, now
	}

	count := rng.Intn(13) + 3
	for n := 1; n <= count; n++ {
		if rng.Float64() < 0.1 {
			group.Skipped = append(group.Skipped, SkippedTest{
				Title: fmt.Sprintf("Skipped_%s_%04d", skipReasons[rng.Intn(len(skipReasons))], n),
			})
		} else {
			var tc TestCase
			tc, now = buildCase(rng, now, n)
			group.Cases = append(group.Cases, tc)
		}
		now += 1.0 + rng.Float64()*4.0
	}
	return group, now
}

func buildCase(rng *rand.Rand, now float64, num int) (TestCase, float64) {
	tc := TestCase{
		Timestamp: fmt.Sprintf("%.1f", now),
		StartTime: caseStart.Add(time.Duration(now) * time.Second).Format("2006-01-02 15:04:05"),
		Title: fmt.Sprintf("%s_%s_%s_%04d",
			testTypes[rng.Intn(len(testTypes))],
			testActions[rng.Intn(len(testActions))],
			testTargets[rng.Intn(len(testTargets))], num),
	}

	result := randomVerdict(rng)
	steps := rng.Intn(6) + 3
	now += 0.5
	for s := 1; s <= steps; s++ {
		var step TestStep
		step, now = buildStep(rng, now, s, result)
		tc.Steps = append(tc.Steps, step)
	}

	tc.Verdict = Verdict{Timestamp: fmt.Sprintf("%.1f", now), Result: result}
	return tc, now + 1.0 + rng.Float64()*2.0
}

func buildStep(rng *rand.Rand, now float64, num int, caseResult string) (TestStep, float64) {
	stepResult := "pass"
	if caseResult == "fail" && rng.Float64() < 0.7 {
		stepResult = "fail"
	}

	step := TestStep{
		Timestamp: fmt.Sprintf("%.1f", now),
		Level:     rng.Intn(3),
		Type:      stepTypes[rng.Intn(len(stepTypes))],
		Ident:     fmt.Sprintf("TS-%03d", num),
		Result:    stepResult,
		Text:      stepDescriptions[rng.Intn(len(stepDescriptions))],
	}

	if stepResult == "fail" && rng.Float64() < 0.5 {
		step.Tabular = buildFailureTable(rng)
	}
	return step, now + 0.5 + rng.Float64()*1.5
}

func buildFailureTable(rng *rand.Rand) *TabularInfo {
	service := diagServices[rng.Intn(len(diagServices))]
	nrc := negativeResponses[rng.Intn(len(negativeResponses))]

	rows := [][]string{
		{"Service", service[0], service[1]},
		{"Request", service[1] + " F1 90", "0x" + service[1][1:] + "F190"},
		{"Expected", "62 F1 90 AB CD EF", "0x62F190ABCDEF"},
		{"Actual", nrc[0], nrc[1]},
		{"Error", nrc[2], "NRC " + nrc[0][len(nrc[0])-2:]},
	}

	info := &TabularInfo{}
	for _, row := range rows {
		info.Rows = append(info.Rows, TableRow{Cells: row})
	}
	return info
}

// Weighted verdict distribution: 60% pass, 25% fail, 15% inconclusive.
func randomVerdict(rng *rand.Rand) string {
	r := rng.Float64()
	switch {
	case r < 0.6:
		return "pass"
	case r < 0.85:
		return "fail"
	default:
		return "inconclusive"
	}
}

func writeModule(path string, module *TestModule) error {
	data, err := xml.MarshalIndent(module, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	content := append([]byte(xml.Header), data...)
	content = append(content, '\n')
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
