// internal/store/mock_gen.go
package store

//go:generate mockgen -source=./store.go -destination=../mocks/mock_store.go -package=mocks OrganizationStore,UserStore,CourseStore,EnrollmentStore
