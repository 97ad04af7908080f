package grading

// QuizLetter maps a quiz percentage to the coarse A-F scale used on quiz
// results.
func QuizLetter(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// AssignmentLetter maps an assignment percentage to the finer plus/minus
// scale used on grade records.
func AssignmentLetter(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 85:
		return "A"
	case percentage >= 80:
		return "A-"
	case percentage >= 75:
		return "B+"
	case percentage >= 70:
		return "B"
	case percentage >= 65:
		return "B-"
	case percentage >= 60:
		return "C+"
	case percentage >= 55:
		return "C"
	case percentage >= 50:
		return "C-"
	default:
		return "F"
	}
}

// OverallFeedback maps an assignment percentage to the fixed feedback bands
// attached to grade records.
func OverallFeedback(percentage float64) string {
	switch {
	case percentage >= 85:
		return "Excellent performance! You demonstrate strong understanding of the concepts."
	case percentage >= 75:
		return "Good work! You have a solid grasp of most concepts with room for minor improvements."
	case percentage >= 65:
		return "Satisfactory performance. Review the feedback to strengthen your understanding."
	case percentage >= 50:
		return "Needs improvement. Please review the material and consider seeking additional help."
	default:
		return "Significant improvement needed. Please review the fundamentals and attend office hours."
	}
}
