// Package layout implements the semantic layout engine for Dazzle workspaces.
//
// The engine converts a workspace's declared regions into a deterministic
// layout plan in four stages:
//
//  1. Extract: classify each region into an attention signal (kind + weight)
//  2. Adjust: optionally reweight signals using a persona's attention biases
//  3. Select: pick one of five layout archetypes via an ordered rule chain
//  4. Allocate: pack signals into the archetype's fixed surfaces under
//     capacity and attention-budget constraints
//
// The whole pipeline is pure: identical (workspace, persona, engine version)
// inputs always produce a byte-identical plan. There is no hidden state and
// no randomness, which is what makes content-addressed caching of plans safe
// (see pkg/cache and pkg/pipeline).
//
// Rendering density (classic/dense/comfortable) is resolved separately by
// [ResolveVariant] and never feeds back into allocation.
package layout
