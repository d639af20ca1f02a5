package i18n

// Message keys shared by handlers and middleware
const (
	MsgInternal           = "error.internal"
	MsgBadRequest         = "error.bad_request"
	MsgUnauthorized       = "error.unauthorized"
	MsgTooManyRequests    = "error.too_many_requests"
	MsgMemoryNotFound     = "memory.not_found"
	MsgMemoryContent      = "memory.content_required"
	MsgMemoryNotOwner     = "memory.not_owner"
	MsgMemoryDeleted      = "memory.deleted"
	MsgCommentContent     = "comment.content_required"
	MsgTokenExpired       = "auth.token_expired"
	MsgTokenInvalid       = "auth.token_invalid"
	MsgServiceUnavailable = "error.unavailable"
)

// DefaultMessages returns built-in translations for all supported locales.
// They can be overridden by loading JSON files from a directory.
func DefaultMessages() map[Locale]map[string]string {
	return map[Locale]map[string]string{
		LocaleEn: enMessages,
		LocaleKo: koMessages,
		LocaleJa: jaMessages,
		LocaleEs: esMessages,
	}
}

var enMessages = map[string]string{
	MsgInternal:           "Internal Server Error",
	MsgBadRequest:         "Invalid request",
	MsgUnauthorized:       "Unauthorized - No token provided",
	MsgTooManyRequests:    "Too many requests. Please try again in %d seconds",
	MsgMemoryNotFound:     "Memory not found",
	MsgMemoryContent:      "Content is required",
	MsgMemoryNotOwner:     "You can only delete your own memories",
	MsgMemoryDeleted:      "Memory deleted successfully",
	MsgCommentContent:     "Comment content is required",
	MsgTokenExpired:       "Unauthorized - Token expired",
	MsgTokenInvalid:       "Unauthorized - Invalid token",
	MsgServiceUnavailable: "Service temporarily unavailable",
}

var koMessages = map[string]string{
	MsgInternal:           "서버 내부 오류가 발생했습니다",
	MsgBadRequest:         "잘못된 요청입니다",
	MsgUnauthorized:       "인증이 필요합니다",
	MsgTooManyRequests:    "요청이 너무 많습니다. %d초 후 다시 시도해주세요",
	MsgMemoryNotFound:     "메모리를 찾을 수 없습니다",
	MsgMemoryContent:      "내용을 입력해주세요",
	MsgMemoryNotOwner:     "본인이 작성한 메모리만 삭제할 수 있습니다",
	MsgMemoryDeleted:      "메모리가 삭제되었습니다",
	MsgCommentContent:     "댓글 내용을 입력해주세요",
	MsgTokenExpired:       "인증 토큰이 만료되었습니다. 다시 로그인해주세요",
	MsgTokenInvalid:       "유효하지 않은 인증 토큰입니다",
	MsgServiceUnavailable: "일시적으로 서비스를 이용할 수 없습니다",
}

var jaMessages = map[string]string{
	MsgInternal:           "サーバー内部エラーが発生しました",
	MsgBadRequest:         "不正なリクエストです",
	MsgUnauthorized:       "認証が必要です",
	MsgTooManyRequests:    "リクエストが多すぎます。%d秒後に再試行してください",
	MsgMemoryNotFound:     "メモリーが見つかりません",
	MsgMemoryContent:      "内容を入力してください",
	MsgMemoryNotOwner:     "自分のメモリーのみ削除できます",
	MsgMemoryDeleted:      "メモリーを削除しました",
	MsgCommentContent:     "コメント内容を入力してください",
	MsgTokenExpired:       "認証トークンの有効期限が切れました。再度ログインしてください",
	MsgTokenInvalid:       "無効な認証トークンです",
	MsgServiceUnavailable: "一時的にサービスを利用できません",
}

var esMessages = map[string]string{
	MsgInternal:           "Error interno del servidor",
	MsgBadRequest:         "Solicitud no válida",
	MsgUnauthorized:       "No autorizado",
	MsgTooManyRequests:    "Demasiadas solicitudes. Inténtalo de nuevo en %d segundos",
	MsgMemoryNotFound:     "Recuerdo no encontrado",
	MsgMemoryContent:      "El contenido es obligatorio",
	MsgMemoryNotOwner:     "Solo puedes eliminar tus propios recuerdos",
	MsgMemoryDeleted:      "Recuerdo eliminado correctamente",
	MsgCommentContent:     "El comentario no puede estar vacío",
	MsgTokenExpired:       "No autorizado: el token ha caducado",
	MsgTokenInvalid:       "No autorizado: token no válido",
	MsgServiceUnavailable: "Servicio no disponible temporalmente",
}
