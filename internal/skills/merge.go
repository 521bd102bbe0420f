package skills

// MergeForResume orders the skills section of a resume. Skills the job
// description asks for and the user already has come first, then the rest of
// the job's skills, then whatever the user listed that the job never
// mentioned. User-supplied ordering is preserved within each group and
// duplicates keep their first position.
func MergeForResume(relevant, userSkills []string) []string {
	userSet := make(map[string]struct{}, len(userSkills))
	for _, s := range userSkills {
		userSet[s] = struct{}{}
	}
	relevantSet := make(map[string]struct{}, len(relevant))
	for _, s := range relevant {
		relevantSet[s] = struct{}{}
	}

	merged := make([]string, 0, len(relevant)+len(userSkills))
	for _, s := range relevant {
		if _, ok := userSet[s]; ok {
			merged = append(merged, s)
		}
	}
	for _, s := range relevant {
		if _, ok := userSet[s]; !ok {
			merged = append(merged, s)
		}
	}
	for _, s := range userSkills {
		if _, ok := relevantSet[s]; !ok {
			merged = append(merged, s)
		}
	}
	return dedupeFirstSeen(merged)
}
