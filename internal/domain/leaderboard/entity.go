package leaderboard

type Entry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
	Avatar string `json:"avatar"`
}
