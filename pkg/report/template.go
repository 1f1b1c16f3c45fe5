package report

const tpl = `
<!DOCTYPE html>
<html>
 <head>
  <meta charset="UTF-8">
  <title>Percolation Threshold Report</title>
 </head>
 <body>
  <h1>Percolation Threshold Report</h1>
  <h2>Task Information:</h2>
  {{ range .TaskInfoItems }}
  <b>{{ index . 0 }} : </b>{{ index . 1 }}<br>
  {{ end }}
  <h2>Execution Information:</h2>
  {{ range .ExecutionInfoItems }}
  <b>{{ index . 0 }} : </b>{{ index . 1 }}<br>
  {{ end }}
  <h2>Summary:</h2>
  <table>
   <tr><td>Mean</td><td>{{ .Summary.Mean }}</td></tr>
   <tr><td>Standard Deviation</td><td>{{ .Summary.Stddev }}</td></tr>
   <tr><td>95% Confidence Interval</td><td>[{{ .Summary.ConfidenceLow }}, {{ .Summary.ConfidenceHigh }}]</td></tr>
  </table>
  <h2>Threshold Distribution:</h2>
  <table>
   <tr>
    {{ range .Histogram.Header }}
    <th>{{ . }}</th>
    {{ end }}
   </tr>
   {{ range .Histogram.Data }}
   <tr>
    {{ range . }}
    <td>{{ . }}</td>
    {{ end }}
   </tr>
   {{ end }}
  </table>
  <h2>Trials:</h2>
  <table>
   <tr>
    {{ range .Trials.Header }}
    <th>{{ . }}</th>
    {{ end }}
   </tr>
   {{ range .Trials.Data }}
   <tr>
    {{ range . }}
    <td>{{ . }}</td>
    {{ end }}
   </tr>
   {{ end }}
  </table>
 </body>
</html>`
