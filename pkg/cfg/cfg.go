package cfg

// Default machining parameters. Heights and tolerance are in the output
// units (inches unless Units is changed to G21).

// HomeHeight is the Z height used for tool changes.
var HomeHeight = 1.5

// SafetyHeight is the Z height for rapid moves between paths.
var SafetyHeight = 0.04

// Tolerance is the maximum allowed deviation of the simplified path from
// the input path. It is also the largest single-axis step that is buffered
// together with the previous cut.
var Tolerance = 0.001

var SpindleSpeed = 1000.0

var Units = "G20"

// WorkHeight is the Z height of the final cutting pass.
var WorkHeight = -0.002

var Feed = 10.0
