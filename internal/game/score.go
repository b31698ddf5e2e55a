package game

const (
	baseScore      = 1000
	attemptPenalty = 100
	timeBonusRate  = 5
)

// ComputeScore derives the round score from the session state:
// 1000 minus 100 per attempt after the first, plus 5 points per second left
// when a timed round is won. Never negative.
func ComputeScore(s *Session) int {
	score := baseScore - (s.AttemptsUsed()-1)*attemptPenalty

	if s.Mode == ModeTimed && s.Won {
		if left := s.TimeLimit - s.ElapsedSeconds(); left > 0 {
			score += left * timeBonusRate
		}
	}
	return max(score, 0)
}

// UpdateScore stores ComputeScore in s.Score and returns it.
func (s *Session) UpdateScore() int {
	s.Score = ComputeScore(s)
	return s.Score
}
