package visit

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден
	ErrVisitNotFound = errors.New("visit.repository: visit not found")

	// ErrSlotTaken возвращается при нарушении уникальности активного слота
	// (confirmed-визит на этот момент уже существует)
	ErrSlotTaken = errors.New("visit.repository: slot already taken")

	// ErrTokenCollision возвращается при нарушении уникальности access token
	ErrTokenCollision = errors.New("visit.repository: access token collision")

	// ErrNoConfirmedVisit возвращается, когда по токену нет визита в статусе confirmed
	ErrNoConfirmedVisit = errors.New("visit.repository: no confirmed visit for token")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("visit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("visit.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("visit.repository: failed to scan row")
)
