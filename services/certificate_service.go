package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/edumart/course_market/configs"
	"github.com/edumart/course_market/database"
	"github.com/edumart/course_market/models"
	"github.com/google/uuid"
)

// CheckAndGenerateCertificate issues a completion certificate the first time
// a student's progress on a course reaches 100. Called fire-and-forget after
// the progress write commits; failures are logged, never surfaced to the
// request that triggered them.
func CheckAndGenerateCertificate(courseID, studentID uuid.UUID) {
	var enrollment models.Enrollment
	if err := database.DB.Where("course_id = ? AND student_id = ?", courseID, studentID).
		First(&enrollment).Error; err != nil || !enrollment.Completed {
		return
	}

	var existing models.Certificate
	if err := database.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&existing).Error; err == nil {
		return
	}

	var course models.Course
	if err := database.DB.Preload("Teacher").First(&course, "id = ?", courseID).Error; err != nil {
		log.Printf("🔥 Certificate: course %s not found: %v", courseID, err)
		return
	}
	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		log.Printf("🔥 Certificate: student %s not found: %v", studentID, err)
		return
	}

	htmlData, err := generateCertificateHTML(student.Name, course.Teacher.Name, course.Title)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate PDF: %v", err)
		return
	}

	uploadURL, err := uploadCertificate(pdfBytes, studentID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate: %v", err)
		return
	}

	cert := models.Certificate{
		StudentID:      studentID,
		CourseID:       courseID,
		TeacherID:      course.TeacherID,
		CourseTitle:    course.Title,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}
	if err := database.DB.Create(&cert).Error; err != nil {
		log.Printf("🔥 Failed to store certificate for student %s: %v", studentID, err)
		return
	}
	log.Printf("✅ Issued completion certificate for course %q to student %s", course.Title, studentID)
}

func generateCertificateHTML(studentName, teacherName, courseTitle string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		TeacherName    string
		CourseTitle    string
		CompletionDate string
	}{
		StudentName:    studentName,
		TeacherName:    teacherName,
		CourseTitle:    courseTitle,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadCertificate(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", studentID, uuid.New().String()),
		Folder:       "course_market_certificates",
		ResourceType: "raw",
	}

	result, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
