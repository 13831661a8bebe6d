package models

// RankingRow is derived on every ranking query, never persisted.
type RankingRow struct {
	Position       int    `json:"position"`
	UserID         int    `json:"user_id"`
	UserName       string `json:"user_name"`
	TotalPoints    int    `json:"total_points"`
	MatchPoints    int    `json:"match_points"`
	ChampionPoints int    `json:"champion_points"`
	PC             int    `json:"pc"` // placar exato
	PV             int    `json:"pv"` // placar do vencedor / vencedor simples
	DG             int    `json:"dg"` // diferença de gols
	PP             int    `json:"pp"` // placar do perdedor
	EM             int    `json:"em"` // empate
	V              int    `json:"v"`  // acertou o vencedor
	E              int    `json:"e"`  // errou
}
