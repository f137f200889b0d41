package services

import "github.com/dmitrijs2005/gophaccounts/internal/common"

// User-facing errors raised by the services in this package. Each call
// builds a fresh value so callers may attach a cause.

func errUsernameInUse() *common.AppError {
	return common.NewValidationError(
		"O Username informado já está em uso",
		"Utilize outro username para realizar esta operação",
	)
}

func errEmailInUse() *common.AppError {
	return common.NewValidationError(
		"O e-mail informado já está em uso",
		"Utilize outro e-mail para realizar esta operação",
	)
}

func errPasswordTooLong() *common.AppError {
	return common.NewValidationError(
		"A senha informada é muito longa",
		"Utilize uma senha com no máximo 72 bytes",
	)
}

func errUserNotFoundByUsername() *common.AppError {
	return common.NewNotFoundError(
		"Usuário não encontrado",
		"Verifique se o username está correto e tente novamente",
	)
}

func errUserNotFoundByEmail() *common.AppError {
	return common.NewNotFoundError(
		"Usuário não encontrado",
		"Verifique se o Email está correto e tente novamente",
	)
}

func errInvalidCredentials() *common.AppError {
	return common.NewUnauthorizedError(
		"E-mail ou senha incorretos",
		"Verifique os dados informados e tente novamente",
	)
}

func errNoActiveSession() *common.AppError {
	return common.NewUnauthorizedError(
		"Usuário não possui sessão ativa.",
		"Verifique se este usuário está logado e tente novamente.",
	)
}
