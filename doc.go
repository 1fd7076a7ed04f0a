// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rafko is the overall repository for Rafko, a reverse-mode
automatic-differentiation engine for sparse, recurrent neural networks
compiled into a DAG of elementary operations. This top level has no
functional code of its own; everything is organized into sub-packages:

* netmodel holds the network/neuron/weight-table data model a graph is
built from.

* synapse decodes the (start, size, reach_past_loops) connectivity
encoding into flat, external/internal-disambiguated indices.

* scalarfn holds the transfer/input/spike scalar function families
(value and derivative) the operation kernels call into.

* netfeature holds softmax/dropout/L1/L2 network features.

* ops holds the discriminated operation kernels (NetworkInput,
NeuronBias, NeuronInput, TransferFn, SpikeFn, Objective,
WeightRegularization, SolutionFeature) that make up a compiled graph.

* graph builds a network's operation list: dependency resolution,
SpikeFn dedup, topological finalization.

* backprop holds the ring-buffered value/derivative/sequence-derivative
storage an autodiff sweep reads and writes.

* autodiff drives the forward/backward sweep and the value-only forward
solver; its tests check that the two agree on forward values.

* weightupdate implements the Plain/Momentum/Nesterov/Adam/AMSGrad
weight updaters sharing one start/iterate/is_finished contract.

* objective holds the cost function interface and its MSE/SquaredError/
CrossEntropy/KLDivergence implementations.

* weightfrag holds sparse weight fragments (ranges plus deltas) and
their linear apply/undo.

* dataset defines the indexed-sample dataset view interface a training
context reads sequences through.

* settings collects the tunable constants (learning rate, optimizer
hyperparameters, thread pool sizes, training strategies) the training
context reads from.

* rafkopool implements the bounded worker pools used for sequence- and
data-parallel evaluation.

* erand has random-number generation support: parameterized distribution
sampling, weighted choice, boolean-by-probability, permutations.

* training ties a network, its graph, a dataset, an objective, an
autodiff optimizer and a weight updater together into one training
context, exposing full/stochastic fitness evaluation and a persistent
one-step solver.
*/
package rafko
