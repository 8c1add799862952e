/*
Package domain contains the core value types of the survey flow compiler.

It defines the input records (Questions, template configuration, respondent data), the
derived grouping used during compilation (Sections) and the compiled output (Nodes, Edges
and the Workflow document). This package is kept pure and free of external dependencies
like I/O or persistence.

# Key Entities

  - Question: One survey question as stored by the question-storage collaborator.
  - Section: Either a standalone question or a parent plus the children it triggers.
  - Node: A state of the compiled conversation (question or structural step).
  - Edge: A natural-language, condition-guarded transition between two nodes.
  - Workflow: The document handed to the external voice-workflow engine.
*/
package domain
