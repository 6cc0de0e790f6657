// Package oracle defines the contract for external rule proposers and
// provides a mock implementation for tests.
//
// An Oracle translates natural-language commands into DPO rules against
// a graph snapshot. The rewrite core never trusts an oracle: every
// proposed rule passes through the full validate-simulate-commit
// pipeline, and a rejected proposal can be handed back through
// RefineWithFeedback together with the validation report. The mock
// oracle returns a fixed create-task rule for commands that ask for one,
// which is all the core's tests require.
package oracle
