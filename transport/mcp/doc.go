// Package mcp exposes push-fight sessions as Model Context Protocol tools.
//
// Server wraps a service.GameService and registers one tool per operation:
// new_game, list_sessions, get_board, try_move, bulk_move, legal_moves,
// list_layouts, delete_session and game_rules. Results are plain text with the
// board drawn as symbol rows under a column ruler.
//
// Usage:
//
//	games := service.NewGameService(session.NewManager(), configs)
//	srv := mcp.NewServer(games, logger)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
