/*
Package ports defines the driven ports (interfaces) used around the blending core.

These interfaces decouple the exploration driver from concrete storage, so the
state graph can live in memory today and elsewhere later without touching the
domain.

# Key Interfaces

  - StateArena: owns explored states keyed by their content identity and
    records the parent/transfer edge that first reached each one.
*/
package ports
