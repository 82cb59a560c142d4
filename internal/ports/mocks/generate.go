//go:generate mockgen -source=../order_repository.go  -destination=./mock_order_repository.go  -package=mocks
//go:generate mockgen -source=../report_store.go      -destination=./mock_report_store.go      -package=mocks
//go:generate mockgen -source=../status_publisher.go  -destination=./mock_status_publisher.go  -package=mocks
//go:generate mockgen -source=../validator.go         -destination=./mock_validator.go         -package=mocks
//go:generate mockgen -source=../logger.go            -destination=./mock_logger.go            -package=mocks
//go:generate mockgen -source=../message_consumer.go  -destination=./mock_message_consumer.go  -package=mocks
//go:generate mockgen -source=../admin_service.go     -destination=./mock_admin_service.go     -package=mocks

package mocks
