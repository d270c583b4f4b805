package reject_group

// Request модель запроса на отклонение группы
type Request struct {
	AnchorID int64 // ID любой резервации группы, обычно якорной
	AdminID  int64 // ID администратора, принимающего решение
}

// Response модель ответа об отклонении группы
type Response struct {
	Rejected int // Сколько резерваций отклонено
}
