// Package pipeline provides a framework for executing scan steps in sequence.
//
// The pipeline pattern is used to process one input text through multiple
// stages: hidden-character detection, homoglyph and whitespace analysis,
// severity summarization, and optional persistence to the scan history.
// Each stage is implemented as a Step that receives the scan context and
// fills in its part of the report.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between steps
// 4. The performed-check list in the report falls out of the step list
//
// The pipeline supports both individual scans and batch processing of
// multiple files with concurrency control using errgroup.
package pipeline
