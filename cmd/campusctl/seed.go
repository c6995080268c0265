// cmd/campusctl/seed.go
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a small sample dataset",
	Long:  `Seed creates one organization with a manager, an instructor, two students, two courses, and enrollments, all through the mutation facade so every invariant holds.`,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore()
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}

		ctx := context.Background()
		orgs := service.NewOrganizationService(st, st)
		users := service.NewUserService(st, st)
		courses := service.NewCourseService(st, st, st)
		enrollments := service.NewEnrollmentService(st, st, st)

		manager, err := users.Create(ctx, service.CreateUserInput{
			FirstName: "Sarah",
			LastName:  "Mitchell",
			Email:     "sarah.mitchell@techacademy.example",
			Role:      model.RoleManager,
			Status:    model.UserActive,
		})
		if err != nil {
			log.Fatalf("Seeding manager: %v", err)
		}

		org, err := orgs.Create(ctx, service.CreateOrganizationInput{
			Name:      "Tech Academy",
			Address:   "42 Harbor Street",
			Email:     "hello@techacademy.example",
			ManagerID: manager.ID,
			Status:    model.OrgActive,
		})
		if err != nil {
			log.Fatalf("Seeding organization: %v", err)
		}

		orgID := org.ID
		if _, err := users.Update(ctx, manager.ID, service.UpdateUserInput{OrganizationID: &orgID}); err != nil {
			log.Fatalf("Attaching manager to organization: %v", err)
		}

		instructor, err := users.Create(ctx, service.CreateUserInput{
			FirstName:      "James",
			LastName:       "Okafor",
			Email:          "james.okafor@techacademy.example",
			Role:           model.RoleInstructor,
			OrganizationID: org.ID,
			Status:         model.UserActive,
		})
		if err != nil {
			log.Fatalf("Seeding instructor: %v", err)
		}

		studentInputs := []service.CreateUserInput{
			{FirstName: "Maya", LastName: "Lindqvist", Email: "maya.lindqvist@student.example", Role: model.RoleStudent, OrganizationID: org.ID, Status: model.UserActive},
			{FirstName: "Diego", LastName: "Ferrante", Email: "diego.ferrante@student.example", Role: model.RoleStudent, OrganizationID: org.ID, Status: model.UserActive},
		}
		students := make([]*model.User, 0, len(studentInputs))
		for _, input := range studentInputs {
			student, err := users.Create(ctx, input)
			if err != nil {
				log.Fatalf("Seeding student: %v", err)
			}
			students = append(students, student)
		}

		duration := 8
		maxStudents := 30
		courseInputs := []service.CreateCourseInput{
			{Title: "Introduction to Go", Description: "Fundamentals of the Go programming language", InstructorID: instructor.ID, OrganizationID: org.ID, Duration: &duration, MaxStudents: &maxStudents, Status: model.CourseActive},
			{Title: "Databases in Practice", InstructorID: instructor.ID, OrganizationID: org.ID, Status: model.CourseDraft},
		}
		created := make([]*model.Course, 0, len(courseInputs))
		for _, input := range courseInputs {
			course, err := courses.Create(ctx, input)
			if err != nil {
				log.Fatalf("Seeding course: %v", err)
			}
			created = append(created, course)
		}

		for _, student := range students {
			if _, err := enrollments.Create(ctx, service.CreateEnrollmentInput{
				StudentID: student.ID,
				CourseID:  created[0].ID,
				Status:    model.EnrollmentActive,
			}); err != nil {
				log.Fatalf("Seeding enrollment: %v", err)
			}
		}

		fmt.Printf("Seeded organization %q with %d users, %d courses, %d enrollments\n",
			org.Name, 2+len(students), len(created), len(students))
	},
}
