/*
Package domain contains the core domain models of the circuit engine.

It defines the vocabulary shared by the runtime, the adapters and the hosts:
component kinds, terminal identifiers, circuit classifications, trigger
reasons and the events emitted after each trace. This package is kept pure
and free of I/O.

# Key Entities

  - Scene: the declarative description of a circuit (components, links, switch positions).
  - TerminalID: the address of one electrical connection point ("R1.a").
  - Classification: the qualitative state of the circuit (Open, Closed, Short, Incomplete).
  - LifecycleHooks: callbacks through which visual and actuator layers observe the engine.
*/
package domain
