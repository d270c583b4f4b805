package reservation

import "github.com/m04kA/UCR-ReservationService/pkg/txmanager"

// Переиспользуем интерфейс исполнителя запросов из txmanager:
// репозиторий одинаково работает с *sql.DB и активной транзакцией
type DBExecutor = txmanager.DBExecutor
