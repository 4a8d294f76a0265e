package asc

import (
	ascruntime "github.com/wippyai/asc-runtime"
)

type Heap = ascruntime.Heap
