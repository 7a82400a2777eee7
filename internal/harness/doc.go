// Package harness runs rental scenarios written in YAML and checks the
// resulting state and activity transcript.
//
// # Scenario Format
//
//	name: checkout_skips_unavailable
//	description: "An available reservation jumps an unavailable one"
//	inventory:
//	  - "0 Alien"
//	  - "1 Brazil"
//	accounts:
//	  - id: pat
//	    password: pw
//	    max_at_home: 1
//	steps:
//	  - do: login
//	    id: pat
//	    password: pw
//	  - do: reserve
//	    pos: 1
//	    expect:
//	      at_home: [Brazil]
//	      stock: { Brazil: 0 }
//	  - do: promote
//	    pos: 5
//	    error: INDEX_OUT_OF_RANGE
//
// Accounts listed under accounts are registered before the first step
// without going through the admin session.
//
// # Actions
//
//   - login (id, password), logout
//   - add_account (id, password, max_at_home), cancel_account (id)
//   - reserve, unreserve, promote, return (pos)
//
// A step without error must succeed. A step with error must fail with
// that rentalerr code. expect is checked after the step either way.
//
// # Determinism
//
// Every run uses a fresh in-memory journal, sequential session tokens
// ("session-1", ...) and sequential entry ids, so the transcript of a
// scenario is byte-identical across runs and suitable for golden files.
package harness
