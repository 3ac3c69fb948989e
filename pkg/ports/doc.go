/*
Package ports defines the interfaces that decouple the circuit engine from its
scene sources and from the adapters that drive it.

# Key Interfaces

  - SceneLoader: Responsible for loading the Scene definition (e.g., from YAML or Memory).
  - Engine: The operations exposed to drivers (drag-and-drop input, switch actuators, HTTP, MCP).
*/
package ports
