package dto

import "time"

type SetGoalInput struct {
	Type   string
	Target int
}

type GoalOutput struct {
	ID        string
	Type      string
	Target    int
	CreatedAt time.Time
}

type StreakOutput struct {
	CurrentStreak  int
	LongestStreak  int
	LastActiveDate string
}

type SnapshotOutput struct {
	Today          string
	DailyGoal      int
	TodayPagesRead int
	DailyProgress  int
	GoalMet        bool
	Streak         StreakOutput
}
