package core

// Version is stamped into run manifests and benchmark reports so that
// archived results can be traced back to the code that produced them.
const Version = "1.0.0"

// Epsilon stabilizes every denominator in the module that can reach
// zero: noise power, norm ratios, metric denominators. All components
// must reference this constant instead of a local literal. Its exact
// value is part of the numerical contract and directly affects output
// in near-degenerate cases (all-zero reference, empty residual).
const Epsilon = 1e-10
