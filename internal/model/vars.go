package model

import "fmt"

// VarX names the "course i taken in slot s" binary.
func VarX(courseID, term int) string {
	return fmt.Sprintf("x_%d_%d", courseID, term)
}

// VarXi names the "course i appears anywhere in the plan" binary.
func VarXi(courseID int) string {
	return fmt.Sprintf("xi_%d", courseID)
}

// VarD names the latest-term-used continuous auxiliary.
const VarD = "D"

// VarDL names the max-per-semester-difficulty-load continuous auxiliary.
const VarDL = "DL"
