// Package hier walks the module hierarchy of an elaborated design.
//
// It answers two questions about a top-level module: which registers the
// synthesized netlist will contain (with their flattened instance paths),
// and which wires form its external inputs and outputs. Both follow the
// naming conventions bsc applies to msc output: instance paths are joined
// with '_', method ports are `method_arg` / `method_enable`, a synthesized
// function exposes its arguments directly and its result as `out`, and
// ports of BVI black boxes inside the hierarchy surface at the top level.
package hier
