package services

// GraphQL documents for the content model. Published filtering and ordering
// happen on the server.

const getArtistsQuery = `
query GetArtists {
  artists(where: { published: true }, orderBy: order_ASC) {
    id
    name
    role
    specialty
    experience
    description { html }
    image { url }
    instagram
    portfolio { url }
    achievements
    email
  }
}`

const designFields = `
    id
    name
    description
    type
    style
    image { url }
    images { url }
    artist { name }
    createdAt`

const getAllTattooDesignsQuery = `
query GetAllTattooDesigns {
  tattooDesigns(where: { published: true }, orderBy: createdAt_DESC) {` + designFields + `
  }
}`

const getTattooDesignsByTypeQuery = `
query GetTattooDesignsByType($type: String!) {
  tattooDesigns(where: { published: true, type: $type }, orderBy: createdAt_DESC) {` + designFields + `
  }
}`

const getFeaturedTattoosQuery = `
query GetFeaturedTattoos {
  tattooDesigns(where: { published: true, featured: true }, orderBy: order_ASC, first: 8) {
    id
    name
    type
    style
    image { url }
  }
}`

const getCoursesQuery = `
query GetCourses {
  courses(where: { published: true }, orderBy: order_ASC) {
    id
    title
    duration
    description { html }
    features
    level
    image { url mimeType }
    videoUrl
  }
}`

const getBlogPostsQuery = `
query GetBlogPosts {
  blogPosts(where: { published: true }, orderBy: publicationDate_DESC) {
    id
    title
    slug
    excerpt
    content { html }
    image { url }
    tags
    artist { name instagram }
    publicationDate
    publishedAt
  }
}`

const getPageContentQuery = `
query GetPageContent($slug: String!) {
  page(where: { slug: $slug }) {
    heroImage { url }
    heroVideo { url }
    galleryMarqueeImages { url }
    bwStyleVideo { url }
    bwStyleImage { url }
    colorStyleVideo { url }
    colorStyleImage { url }
    studentWorkImages { url }
  }
}`

const getHomepageDataQuery = `
query GetHomepageData {
  homepages(first: 1) {
    heroVideo { url }
    welcomeImage { url }
    bookingVideo { url }
  }
}`
