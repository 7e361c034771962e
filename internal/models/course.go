package models

import (
	"errors"
	"strings"
)

// Course is the closed set of course tags a topic can belong to.
type Course string

const (
	CourseJava        Course = "JAVA"
	CourseSpringBoot  Course = "SPRING_BOOT"
	CourseJavaScript  Course = "JAVASCRIPT"
	CoursePython      Course = "PYTHON"
	CourseGolang      Course = "GOLANG"
	CourseDevOps      Course = "DEVOPS"
	CourseDataScience Course = "DATA_SCIENCE"
)

var ErrUnknownCourse = errors.New("unknown course")

var courses = []Course{
	CourseJava, CourseSpringBoot, CourseJavaScript, CoursePython,
	CourseGolang, CourseDevOps, CourseDataScience,
}

// ParseCourse resolves a course name case-insensitively.
func ParseCourse(name string) (Course, error) {
	want := Course(strings.ToUpper(strings.TrimSpace(name)))
	for _, c := range courses {
		if c == want {
			return c, nil
		}
	}
	return "", ErrUnknownCourse
}

func (c Course) Valid() bool {
	for _, known := range courses {
		if c == known {
			return true
		}
	}
	return false
}
