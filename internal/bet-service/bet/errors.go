package bet

import "errors"

var (
	// ErrInvalidArgument indica campo obrigatório ausente ou inválido na entrada.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrBetNotFound indica que o id não tem aposta armazenada.
	ErrBetNotFound = errors.New("bet not found")
	// ErrMatchNotFound cobre tanto partida inexistente quanto falha ao consultar o match-service.
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchNotPlayed indica partida existente mas ainda não encerrada; tente depois.
	ErrMatchNotPlayed = errors.New("match not played")
)
