/*
Package ports defines the driven ports (interfaces) of surveyflow.

These interfaces decouple the compiler surfaces from external implementations, allowing
the HTTP and MCP servers to work with various storage backends.

# Key Interfaces

  - WorkflowStore: Responsible for keeping compiled workflows (e.g., in Memory or Redis).

RunWorkflowStoreContract is a reusable test suite every WorkflowStore must pass.
*/
package ports
