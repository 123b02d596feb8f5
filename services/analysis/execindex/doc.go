// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package execindex assigns unique identifiers to execution points.
//
// An execution point is one concrete execution of one statement. Two
// executions of the same source line are different points: loop iterations
// get increasing instance numbers, and recursive calls get longer context
// paths. The triple <calling context, statement, instance> is unique within
// a single traced run.
//
// The Assigner is driven by the trace collector: PushContext on routine
// entry, Record for every stamped event, PopContext on routine exit.
//
// TargetSet provides the lookup the heisenbug demo perturbs with. It is
// immutable after construction, so Matches is safe to call from inside an
// instrumentation callback without locking.
package execindex
