package journey

// RemoteProfile is the merge-relevant slice of a freshly fetched profile
// record. Nil fields mean the row or column was absent: an older record or
// a write that has not landed yet, never an error.
type RemoteProfile struct {
	Stage    *int
	Progress *int
	Clarity  *int
}

// LocalProfile is the merge-relevant slice of the session-cached profile.
type LocalProfile struct {
	Stage   int
	Clarity int
}

// Resolved is the canonical outcome of a merge.
type Resolved struct {
	Stage    int
	Progress int
	Clarity  int
}

// Merge reconciles local and remote profile state. Stage and clarity take
// the max of both sides (missing treated as the floor), and progress is
// derived from the resolved stage, never read from either source. The
// result is idempotent and order-independent: replaying stale writes in any
// order converges to the same values.
func Merge(local LocalProfile, remote RemoteProfile) Resolved {
	stage := local.Stage
	if stage < 1 {
		stage = 1
	}
	if remote.Stage != nil && *remote.Stage > stage {
		stage = *remote.Stage
	}

	clarity := local.Clarity
	if clarity < 0 {
		clarity = 0
	}
	if remote.Clarity != nil && *remote.Clarity > clarity {
		clarity = *remote.Clarity
	}

	return Resolved{
		Stage:    stage,
		Progress: ProgressForStage(stage),
		Clarity:  clarity,
	}
}

// needsRepair reports whether the remote record is behind the resolved
// state and should be corrected in the background. Progress repairs only
// fire once the user has actually advanced (stage >= 2); clarity repairs
// fire whenever the remote undercounts, so a clarity correction is not
// silently dropped when progress was already right.
func needsRepair(resolved Resolved, remote RemoteProfile) bool {
	remoteProgress := 0
	if remote.Progress != nil {
		remoteProgress = *remote.Progress
	}
	if remoteProgress < resolved.Progress && resolved.Stage >= 2 {
		return true
	}

	remoteClarity := 0
	if remote.Clarity != nil {
		remoteClarity = *remote.Clarity
	}
	return resolved.Clarity > remoteClarity
}

// remoteFromData extracts the profile-column values; repair decisions
// compare against these, so side channels stay out of them.
func remoteFromData(data UserData) RemoteProfile {
	if data.Profile == nil {
		return RemoteProfile{}
	}
	p := data.Profile
	return RemoteProfile{
		Stage:    &p.CurrentStage,
		Progress: &p.JourneyProgress,
		Clarity:  &p.PointBClarity,
	}
}

// clarityFloor returns the highest clarity known outside the profile
// column: the session value, lifted by the stage-4 answer row when that
// write landed and the profile write didn't (or the column predates it).
func clarityFloor(local LocalProfile, data UserData) int {
	clarity := local.Clarity
	if c, ok := data.ClarityByStage[StagePointB]; ok && c > clarity {
		clarity = c
	}
	return clarity
}
