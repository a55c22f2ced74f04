// Package testutil provides shared fixtures for tests.
package testutil

// BaselineSummary is a trimmed timing summary in the PETs/PEs grammar
// variant, with enough nesting to exercise the indentation tree.
const BaselineSummary = `Profile Summary: 8 PETs (of 8 total)

Region                           PETs   PEs  Count    Mean (s)    Min (s)     Min PET  Max (s)     Max PET
  [ESMF]                         8      8    1        20.0000     19.9000     4        20.1000     1
    [ensemble] RunPhase1         8      8    1        19.5000     19.4000     4        19.6000     3
      dyn_run                    8      8    MULTIPLE 10.0000     9.8000      2        10.2000     5
        dyn_core                 8      8    240      6.0000      5.9000      2        6.1000      5
        tracer_adv               8      8    240      9.0000      8.8000      1        9.2000      6
        remap                    8      8    120      3.0000      2.9000      0        3.1000      7
      phys_run                   8      8    MULTIPLE 8.0000      7.9000      3        8.1000      2
        moist_proc               8      8    120      5.0000      4.9000      3        5.1000      2
`

// OptimizedSummary pairs with BaselineSummary: dyn_core got faster,
// tracer_adv got slower, and remap is missing entirely.
const OptimizedSummary = `Profile Summary: 8 PETs (of 8 total)

Region                           PETs   PEs  Count    Mean (s)    Min (s)     Min PET  Max (s)     Max PET
  [ESMF]                         8      8    1        18.0000     17.9000     4        18.1000     1
    [ensemble] RunPhase1         8      8    1        17.5000     17.4000     4        17.6000     3
      dyn_run                    8      8    MULTIPLE 8.5000      8.3000      2        8.7000      5
        dyn_core                 8      8    240      4.8000      4.7000      2        4.9000      5
        tracer_adv               8      8    240      9.5000      9.4000      1        9.7000      6
      phys_run                   8      8    MULTIPLE 8.0000      7.9000      3        8.1000      2
        moist_proc               8      8    120      5.0000      4.9000      3        5.1000      2
`

// ShortVariantSummary uses the grammar variant without PETs/PEs columns.
const ShortVariantSummary = `Region                           Count    Mean (s)    Min (s)     Min PET  Max (s)     Max PET
  [ESMF]                         1        20.0000     19.9000     4        20.1000     1
    dyn_run                      MULTIPLE 10.0000     9.8000      2        10.2000     5
      dyn_core                   240      6.0000      5.9000      2        6.1000      5
`
