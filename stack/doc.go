// Package stack builds structure-manager stacks from declarative layer
// specifications.
//
// A specification is an ordered list of adaptors, bottom to top, each with
// its initialization arguments. It is usually read from JSON:
//
//	[
//	  {"name": "AdaptorNeighbourList", "initialization_arguments": {"cutoff": 3.5}},
//	  {"name": "AdaptorCenterContribution", "initialization_arguments": {}},
//	  {"name": "AdaptorStrict", "initialization_arguments": {"cutoff": 3.5}}
//	]
//
// Build stacks the adaptors on a fresh manager.Centers:
//
//	layers, _ := stack.ParseLayers(data, nil)
//	st, _ := stack.Build(layers)
//	if err := st.Update(s); err != nil { ... }
//	top := st.Top()
package stack
