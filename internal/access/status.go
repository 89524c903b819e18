package access

// StatusRedirect классифицирует пару (isConfirmed, rejectionReason) в адрес
// перенаправления независимо от маршрутизации, чтобы правило можно было
// проверять без построения запроса:
//
//   - nil (решение не принято) — страница входа, как и при отсутствии токена;
//   - false с непустой причиной — страница "отклонён";
//   - false без причины — страница "ожидает подтверждения";
//   - true — пустая строка, перенаправление не требуется.
func StatusRedirect(rt Routes, isConfirmed *bool, rejectionReason string) string {
	if isConfirmed == nil {
		return rt.SignInPath
	}
	if *isConfirmed {
		return ""
	}
	if rejectionReason != "" {
		return rt.RejectedPath
	}
	return rt.PendingPath
}
