package handler

import (
	"errors"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
)

// User-facing texts, kept in the language the original deployment's
// operators expect.
const (
	msgServerUnavailable = "Сервер недоступен. Попробуйте позже."
	msgActionInFlight    = "Действие уже выполняется. Подождите."

	msgLoginFieldsRequired = "Введите username и password."
	msgFillAllFields       = "Заполните все поля."
	msgLoginFailed         = "Неправильный username или password"
	msgRegisterDone        = "Регистрация прошла успешно. Перейдите для входа."
	msgRegisterFailed      = "Ошибка регистрации"

	msgUserCreated      = "Пользователь добавлен"
	msgUserCreateFailed = "Ошибка при создании пользователя"
	msgUsersLoadFailed  = "Ошибка при загрузке пользователей"

	msgCertsLoadFailed  = "Ошибка при загрузке сертификатов"
	msgCertSaved        = "Сертификат сохранён"
	msgCertSaveFailed   = "Ошибка при сохранении сертификата"
	msgCertDeleted      = "Сертификат удалён"
	msgCertDeleteFailed = "Ошибка при удалении"
	msgNotifyFailed     = "Ошибка при отправке уведомления"
	msgNotifySMSFailed  = "Ошибка при отправке SMS"

	msgExportFailed       = "Ошибка при экспорте"
	msgImportFailedPrefix = "Ошибка при импорте: "
	msgImportNoFile       = "Выберете файл .xlsx"
	msgImportNoSubject    = "Не указан пользователь для импорта"

	promptDeleteCert  = "Удалить сертификат?"
	promptNotifyEmail = "Отправить уведомление на почту об этом сертификате?"
	promptNotifySMS   = "Отправить SMS-уведомление об этом сертификате?"
	promptNotifyUser  = "Отправить уведомление пользователю?"
)

// userMessage translates an action error into the text surfaced to the
// operator. Local empty-field rejections get the form's own emptyMsg,
// transport failures get the distinct unavailable message, in-flight
// rejections get the busy message, and upstream rejections surface the
// server's message verbatim with fallback when the server sent none.
func userMessage(err error, emptyMsg, fallback string) string {
	switch {
	case errors.Is(err, domain.ErrEmptyFields):
		return emptyMsg
	case errors.Is(err, domain.ErrActionInFlight):
		return msgActionInFlight
	case errors.Is(err, domain.ErrUnavailable):
		return msgServerUnavailable
	}
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) && upstream.Message != "" {
		return upstream.Message
	}
	return fallback
}
